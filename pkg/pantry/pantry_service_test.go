package pantry

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"pantry-tracker/domain"
	"pantry-tracker/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePantryRepository struct {
	items    map[string]*entities.PantryItem
	failAdd  bool
	failEdit bool
}

func newFakePantryRepository() *fakePantryRepository {
	return &fakePantryRepository{items: map[string]*entities.PantryItem{}}
}

func (r *fakePantryRepository) AddItem(ctx context.Context, item *entities.PantryItem) error {
	if r.failAdd {
		return errors.New("insert failed")
	}
	item.ID = uuid.New()
	clone := *item
	r.items[item.ID.String()] = &clone
	return nil
}

func (r *fakePantryRepository) GetItemByID(ctx context.Context, id string) (*entities.PantryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *fakePantryRepository) GetItems(ctx context.Context, userID string) ([]*entities.PantryItem, error) {
	var out []*entities.PantryItem
	for _, item := range r.items {
		if item.UserID.String() == userID {
			clone := *item
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakePantryRepository) UpdateItemFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if r.failEdit {
		return errors.New("update failed")
	}
	item, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for key, value := range fields {
		switch key {
		case "name":
			item.Name = value.(string)
		case "quantity":
			item.Quantity = value.(float64)
		case "unit":
			item.Unit = value.(string)
		case "category":
			item.Category = value.(string)
		case "expiration_date":
			item.ExpirationDate = value.(string)
		case "notes":
			item.Notes = value.(string)
		case "image_url":
			item.ImageURL = value.(string)
		}
	}
	return nil
}

func (r *fakePantryRepository) DeleteItem(ctx context.Context, id string) error {
	if r.failEdit {
		return errors.New("delete failed")
	}
	delete(r.items, id)
	return nil
}

type fakeUserRepository struct {
	user *entities.User
}

func (r *fakeUserRepository) RegisterUser(ctx context.Context, user *entities.User) error {
	return nil
}

func (r *fakeUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	if r.user == nil || r.user.ID.String() != id {
		return nil, gorm.ErrRecordNotFound
	}
	return r.user, nil
}

func (r *fakeUserRepository) CheckEmailExist(ctx context.Context, email string) (bool, error) {
	return false, nil
}

type fakeAwsS3 struct{}

func (fakeAwsS3) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error) {
	return folder + "/" + fileName + ".jpg", nil
}

func (fakeAwsS3) UpdateFile(objectKey string, file *multipart.FileHeader, allowedTypes ...string) (string, error) {
	return objectKey, nil
}

func (fakeAwsS3) DeleteFile(objectKey string) error { return nil }

func (fakeAwsS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.s3.region.amazonaws.com/" + objectKey
}

func (fakeAwsS3) GetObjectKeyFromLink(link string) string {
	return strings.TrimPrefix(link, "https://bucket.s3.region.amazonaws.com/")
}

func newTestService(repo *fakePantryRepository) (PantryService, string) {
	userID := uuid.New()
	svc := NewPantryService(repo, &fakeUserRepository{}, fakeAwsS3{})
	return svc, userID.String()
}

func TestAddItemPersists(t *testing.T) {
	repo := newFakePantryRepository()
	svc, userID := newTestService(repo)

	res, err := svc.AddItem(context.Background(), domain.AddPantryItemRequest{
		Name:     "Rice",
		Quantity: 2,
		Unit:     "kg",
		Category: "Grains",
	}, userID)
	require.NoError(t, err)
	assert.True(t, res.Persisted)
	assert.False(t, strings.HasPrefix(res.Item.ID, "temp-"))

	// The cached entry carries the confirmed id.
	items := svc.StoreFor(userID).Items()
	require.Len(t, items, 1)
	assert.Equal(t, res.Item.ID, items[0].ID)
}

func TestAddItemKeepsLocalCopyOnWriteFailure(t *testing.T) {
	repo := newFakePantryRepository()
	repo.failAdd = true
	svc, userID := newTestService(repo)

	res, err := svc.AddItem(context.Background(), domain.AddPantryItemRequest{
		Name:     "Milk",
		Quantity: 1,
		Unit:     "L",
		Category: "Dairy",
	}, userID)
	require.NoError(t, err)
	assert.False(t, res.Persisted)
	assert.True(t, strings.HasPrefix(res.Item.ID, "temp-"))

	// Optimistic add is never rolled back.
	items := svc.StoreFor(userID).Items()
	require.Len(t, items, 1)
	assert.True(t, strings.HasPrefix(items[0].ID, "temp-"))
	assert.Empty(t, repo.items)
}

func TestGetItem(t *testing.T) {
	repo := newFakePantryRepository()
	svc, userID := newTestService(repo)

	added, err := svc.AddItem(context.Background(), domain.AddPantryItemRequest{
		Name:           "Cheese",
		Quantity:       1,
		Unit:           "pieces",
		Category:       "Dairy",
		ExpirationDate: time.Now().AddDate(0, 0, 5).Format("2006-01-02"),
	}, userID)
	require.NoError(t, err)

	item, err := svc.GetItem(context.Background(), added.Item.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, "Cheese", item.Name)
	assert.Equal(t, string(StatusWarning), item.ExpirationStatus)

	_, err = svc.GetItem(context.Background(), added.Item.ID, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)

	_, err = svc.GetItem(context.Background(), uuid.New().String(), userID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestUpdateItemRemoteFirst(t *testing.T) {
	repo := newFakePantryRepository()
	svc, userID := newTestService(repo)

	added, err := svc.AddItem(context.Background(), domain.AddPantryItemRequest{
		Name:     "Yogurt",
		Quantity: 4,
		Unit:     "pieces",
		Category: "Dairy",
	}, userID)
	require.NoError(t, err)

	repo.failEdit = true
	qty := 2.0
	_, err = svc.UpdateItem(context.Background(), added.Item.ID, domain.UpdatePantryItemRequest{Quantity: &qty}, userID)
	require.Error(t, err)

	// Failed remote write leaves the cache untouched.
	items := svc.StoreFor(userID).Items()
	require.Len(t, items, 1)
	assert.Equal(t, 4.0, items[0].Quantity)

	repo.failEdit = false
	res, err := svc.UpdateItem(context.Background(), added.Item.ID, domain.UpdatePantryItemRequest{Quantity: &qty}, userID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, res.Quantity)
	assert.Equal(t, 2.0, svc.StoreFor(userID).Items()[0].Quantity)
}

func TestUpdateItemRejectsBadExpirationDate(t *testing.T) {
	repo := newFakePantryRepository()
	svc, userID := newTestService(repo)

	added, err := svc.AddItem(context.Background(), domain.AddPantryItemRequest{
		Name:     "Yogurt",
		Quantity: 4,
		Unit:     "pieces",
		Category: "Dairy",
	}, userID)
	require.NoError(t, err)

	bad := "soonish"
	_, err = svc.UpdateItem(context.Background(), added.Item.ID, domain.UpdatePantryItemRequest{ExpirationDate: &bad}, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidExpirationDate)
}

func TestDeleteItemRemoteFirst(t *testing.T) {
	repo := newFakePantryRepository()
	svc, userID := newTestService(repo)

	added, err := svc.AddItem(context.Background(), domain.AddPantryItemRequest{
		Name:     "Bread",
		Quantity: 1,
		Unit:     "pieces",
		Category: "Grains",
	}, userID)
	require.NoError(t, err)

	repo.failEdit = true
	require.Error(t, svc.DeleteItem(context.Background(), added.Item.ID, userID))
	assert.Len(t, svc.StoreFor(userID).Items(), 1)

	repo.failEdit = false
	require.NoError(t, svc.DeleteItem(context.Background(), added.Item.ID, userID))
	assert.Empty(t, svc.StoreFor(userID).Items())
	assert.Empty(t, repo.items)
}

func TestDeleteItemRejectsForeignItem(t *testing.T) {
	repo := newFakePantryRepository()
	svc, userID := newTestService(repo)

	added, err := svc.AddItem(context.Background(), domain.AddPantryItemRequest{
		Name:     "Bread",
		Quantity: 1,
		Unit:     "pieces",
		Category: "Grains",
	}, userID)
	require.NoError(t, err)

	err = svc.DeleteItem(context.Background(), added.Item.ID, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)
}

func addWithExpiry(t *testing.T, svc PantryService, userID, name, date string) {
	t.Helper()
	_, err := svc.AddItem(context.Background(), domain.AddPantryItemRequest{
		Name:           name,
		Quantity:       1,
		Unit:           "pieces",
		Category:       "Other",
		ExpirationDate: date,
	}, userID)
	require.NoError(t, err)
}

func TestGetDashboardBannerSuppression(t *testing.T) {
	repo := newFakePantryRepository()
	svc, userID := newTestService(repo)

	now := time.Now()
	critical := now.AddDate(0, 0, 2).Format("2006-01-02")
	warning := now.AddDate(0, 0, 6).Format("2006-01-02")

	addWithExpiry(t, svc, userID, "Milk", critical)
	addWithExpiry(t, svc, userID, "Cheese", warning)

	res, err := svc.GetDashboard(context.Background(), userID)
	require.NoError(t, err)

	assert.Len(t, res.NeedsAttention, 1)
	assert.Len(t, res.ExpiringSoon, 1)
	assert.True(t, res.ShowAttentionBanner)
	// The expiring banner yields while the attention banner shows.
	assert.False(t, res.ShowExpiringBanner)
}

func TestGetDashboardExpiredItemsSuppressExpiringBanner(t *testing.T) {
	repo := newFakePantryRepository()
	svc, userID := newTestService(repo)

	now := time.Now()
	expired := now.AddDate(0, 0, -2).Format("2006-01-02")
	warning := now.AddDate(0, 0, 6).Format("2006-01-02")

	addWithExpiry(t, svc, userID, "Old Milk", expired)
	addWithExpiry(t, svc, userID, "Cheese", warning)

	res, err := svc.GetDashboard(context.Background(), userID)
	require.NoError(t, err)

	// Expired items count as needing attention even with nothing critical.
	assert.Len(t, res.Expired, 1)
	assert.Len(t, res.NeedsAttention, 1)
	assert.Len(t, res.ExpiringSoon, 1)
	assert.True(t, res.ShowAttentionBanner)
	assert.False(t, res.ShowExpiringBanner)
}

func TestGetDashboardExpiringBannerAlone(t *testing.T) {
	repo := newFakePantryRepository()
	svc, userID := newTestService(repo)

	warning := time.Now().AddDate(0, 0, 6).Format("2006-01-02")
	addWithExpiry(t, svc, userID, "Cheese", warning)

	res, err := svc.GetDashboard(context.Background(), userID)
	require.NoError(t, err)

	assert.False(t, res.ShowAttentionBanner)
	assert.True(t, res.ShowExpiringBanner)
}

func TestBuildDigestBodySectionsAreDisjoint(t *testing.T) {
	dashboard := domain.DashboardResponse{
		Expired: []domain.PantryItemResponse{
			{Name: "Old Milk", Quantity: 1, Unit: "L", ExpirationDate: "2025-03-01", ExpirationStatus: string(StatusExpired)},
		},
		NeedsAttention: []domain.PantryItemResponse{
			{Name: "Old Milk", Quantity: 1, Unit: "L", ExpirationDate: "2025-03-01", ExpirationStatus: string(StatusExpired)},
			{Name: "Eggs", Quantity: 6, Unit: "pieces", ExpirationDate: "2025-03-12", ExpirationStatus: string(StatusCritical)},
		},
	}

	body := buildDigestBody("Alex", dashboard)

	assert.Contains(t, body, "Already expired")
	assert.Contains(t, body, "Expiring in the next 3 days")
	assert.Contains(t, body, "Eggs")
	// The expired item appears only in its own section.
	assert.Equal(t, 1, strings.Count(body, "Old Milk"))
}

func TestSendExpiryDigestWithoutSMTP(t *testing.T) {
	repo := newFakePantryRepository()
	svc, userID := newTestService(repo)

	err := svc.SendExpiryDigest(context.Background(), userID)
	assert.ErrorIs(t, err, domain.ErrMailNotConfigured)
}

func TestGetAnalysisBucketsAndCategories(t *testing.T) {
	repo := newFakePantryRepository()
	svc, userID := newTestService(repo)

	now := time.Now()
	addWithExpiry(t, svc, userID, "Old Milk", now.AddDate(0, 0, -2).Format("2006-01-02"))
	addWithExpiry(t, svc, userID, "Eggs", now.AddDate(0, 0, 1).Format("2006-01-02"))
	addWithExpiry(t, svc, userID, "Cheese", now.AddDate(0, 0, 6).Format("2006-01-02"))
	addWithExpiry(t, svc, userID, "Flour", now.AddDate(0, 1, 0).Format("2006-01-02"))
	addWithExpiry(t, svc, userID, "Salt", "")

	res, err := svc.GetAnalysis(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 5, res.TotalItems)
	assert.Equal(t, 1, res.CategoryCount)
	assert.Equal(t, 5, res.CategoryCounts["Other"])
	assert.Equal(t, 1, res.ExpirationBuckets.Expired)
	assert.Equal(t, 1, res.ExpirationBuckets.Critical)
	assert.Equal(t, 1, res.ExpirationBuckets.Warning)
	assert.Equal(t, 1, res.ExpirationBuckets.Good)
}
