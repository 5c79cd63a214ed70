package pantry

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"pantry-tracker/domain"
	"pantry-tracker/entities"
	"pantry-tracker/internal/utils/mailing"
	"pantry-tracker/internal/utils/storage"
	"pantry-tracker/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const imageFolder = "pantry-images"

type (
	PantryService interface {
		AddItem(ctx context.Context, req domain.AddPantryItemRequest, userID string) (domain.AddPantryItemResponse, error)
		GetItems(ctx context.Context, userID string) ([]domain.PantryItemResponse, error)
		GetItem(ctx context.Context, itemID string, userID string) (domain.PantryItemResponse, error)
		UpdateItem(ctx context.Context, itemID string, req domain.UpdatePantryItemRequest, userID string) (domain.PantryItemResponse, error)
		DeleteItem(ctx context.Context, itemID string, userID string) error
		UploadItemImage(ctx context.Context, req domain.UploadItemImageRequest, userID string) (domain.PantryItemResponse, error)
		GetDashboard(ctx context.Context, userID string) (domain.DashboardResponse, error)
		GetAnalysis(ctx context.Context, userID string) (domain.AnalysisResponse, error)
		SendExpiryDigest(ctx context.Context, userID string) error
		StoreFor(userID string) *Store
	}

	pantryService struct {
		pantryRepository PantryRepository
		userRepository   user.UserRepository
		awsS3            storage.AwsS3

		mu     sync.Mutex
		stores map[string]*Store
	}
)

func NewPantryService(pantryRepository PantryRepository, userRepository user.UserRepository, awsS3 storage.AwsS3) PantryService {
	return &pantryService{
		pantryRepository: pantryRepository,
		userRepository:   userRepository,
		awsS3:            awsS3,
		stores:           make(map[string]*Store),
	}
}

// StoreFor returns the per-user inventory cache, creating it on first use.
// The loader reads the newest items from the database, capped at ItemsLimit.
func (s *pantryService) StoreFor(userID string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	if store, ok := s.stores[userID]; ok {
		return store
	}

	store := NewStore(func(ctx context.Context) ([]Item, error) {
		rows, err := s.pantryRepository.GetItems(ctx, userID)
		if err != nil {
			return nil, err
		}
		items := make([]Item, 0, len(rows))
		for _, row := range rows {
			items = append(items, entityToItem(row))
		}
		return items, nil
	})
	s.stores[userID] = store
	return store
}

// AddItem writes through the optimistic path: the item lands in the local
// list under a temporary id immediately, then the database write runs. On
// success the temporary id is swapped for the confirmed one; on failure the
// item stays in the list and Persisted is false. The optimistic insert is
// never rolled back.
func (s *pantryService) AddItem(ctx context.Context, req domain.AddPantryItemRequest, userID string) (domain.AddPantryItemResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return domain.AddPantryItemResponse{}, domain.ErrParseUUID
	}

	now := time.Now()
	tempID := "temp-" + uuid.New().String()
	item := Item{
		ID:             tempID,
		Name:           req.Name,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		Category:       req.Category,
		ExpirationDate: req.ExpirationDate,
		Notes:          req.Notes,
		AddedDate:      now,
	}

	store := s.StoreFor(userID)
	store.AddItem(item)

	entity := entities.PantryItem{
		UserID:         uid,
		Name:           req.Name,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		Category:       req.Category,
		ExpirationDate: req.ExpirationDate,
		Notes:          req.Notes,
		AddedDate:      now,
	}
	if err := s.pantryRepository.AddItem(ctx, &entity); err != nil {
		return domain.AddPantryItemResponse{
			Item:      itemToResponse(item, now),
			Persisted: false,
		}, nil
	}

	store.ReplaceTempID(tempID, entity.ID.String())
	item.ID = entity.ID.String()

	return domain.AddPantryItemResponse{
		Item:      itemToResponse(item, now),
		Persisted: true,
	}, nil
}

func (s *pantryService) GetItems(ctx context.Context, userID string) ([]domain.PantryItemResponse, error) {
	store := s.StoreFor(userID)
	if err := store.Refresh(ctx); err != nil {
		return nil, err
	}

	now := time.Now()
	items := store.Items()
	out := make([]domain.PantryItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, itemToResponse(item, now))
	}
	return out, nil
}

func (s *pantryService) GetItem(ctx context.Context, itemID string, userID string) (domain.PantryItemResponse, error) {
	entity, err := s.ownedItem(ctx, itemID, userID)
	if err != nil {
		return domain.PantryItemResponse{}, err
	}
	return itemToResponse(entityToItem(entity), time.Now()), nil
}

// UpdateItem is remote-first: the database row changes before the local list
// does, so a failed write leaves the cache untouched.
func (s *pantryService) UpdateItem(ctx context.Context, itemID string, req domain.UpdatePantryItemRequest, userID string) (domain.PantryItemResponse, error) {
	if _, err := s.ownedItem(ctx, itemID, userID); err != nil {
		return domain.PantryItemResponse{}, err
	}

	fields := map[string]interface{}{}
	patch := ItemPatch{}
	if req.Name != nil {
		fields["name"] = *req.Name
		patch.Name = req.Name
	}
	if req.Quantity != nil {
		fields["quantity"] = *req.Quantity
		patch.Quantity = req.Quantity
	}
	if req.Unit != nil {
		fields["unit"] = *req.Unit
		patch.Unit = req.Unit
	}
	if req.Category != nil {
		fields["category"] = *req.Category
		patch.Category = req.Category
	}
	if req.ExpirationDate != nil {
		if *req.ExpirationDate != "" {
			if _, err := time.Parse(dateLayout, *req.ExpirationDate); err != nil {
				return domain.PantryItemResponse{}, domain.ErrInvalidExpirationDate
			}
		}
		fields["expiration_date"] = *req.ExpirationDate
		patch.ExpirationDate = req.ExpirationDate
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
		patch.Notes = req.Notes
	}

	if len(fields) > 0 {
		if err := s.pantryRepository.UpdateItemFields(ctx, itemID, fields); err != nil {
			return domain.PantryItemResponse{}, err
		}
		s.StoreFor(userID).UpdateItem(itemID, patch)
	}

	updated, err := s.pantryRepository.GetItemByID(ctx, itemID)
	if err != nil {
		return domain.PantryItemResponse{}, err
	}
	return itemToResponse(entityToItem(updated), time.Now()), nil
}

// DeleteItem is remote-first as well: the cached entry is only removed after
// the database confirmed the delete.
func (s *pantryService) DeleteItem(ctx context.Context, itemID string, userID string) error {
	if _, err := s.ownedItem(ctx, itemID, userID); err != nil {
		return err
	}
	if err := s.pantryRepository.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	s.StoreFor(userID).DeleteItem(itemID)
	return nil
}

func (s *pantryService) UploadItemImage(ctx context.Context, req domain.UploadItemImageRequest, userID string) (domain.PantryItemResponse, error) {
	entity, err := s.ownedItem(ctx, req.ItemID, userID)
	if err != nil {
		return domain.PantryItemResponse{}, err
	}

	base := strings.TrimSuffix(filepath.Base(req.Image.Filename), filepath.Ext(req.Image.Filename))
	fileName := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), base)

	objectKey, err := s.awsS3.UploadFile(fileName, req.Image, imageFolder, storage.AllowImage...)
	if err != nil {
		return domain.PantryItemResponse{}, err
	}
	imageURL := s.awsS3.GetPublicLinkKey(objectKey)

	if entity.ImageURL != "" {
		if oldKey := s.awsS3.GetObjectKeyFromLink(entity.ImageURL); oldKey != "" {
			_ = s.awsS3.DeleteFile(oldKey)
		}
	}

	if err := s.pantryRepository.UpdateItemFields(ctx, req.ItemID, map[string]interface{}{"image_url": imageURL}); err != nil {
		return domain.PantryItemResponse{}, err
	}
	s.StoreFor(userID).UpdateItem(req.ItemID, ItemPatch{ImageURL: &imageURL})

	entity.ImageURL = imageURL
	return itemToResponse(entityToItem(entity), time.Now()), nil
}

// GetDashboard splits the inventory into the three attention lists. The
// expiring-soon banner is suppressed whenever the needs-attention banner is
// showing, so only one banner renders at a time.
func (s *pantryService) GetDashboard(ctx context.Context, userID string) (domain.DashboardResponse, error) {
	items, err := s.GetItems(ctx, userID)
	if err != nil {
		return domain.DashboardResponse{}, err
	}

	res := domain.DashboardResponse{
		TotalItems:     len(items),
		ExpiringSoon:   []domain.PantryItemResponse{},
		NeedsAttention: []domain.PantryItemResponse{},
		Expired:        []domain.PantryItemResponse{},
	}

	categories := map[string]struct{}{}
	for _, item := range items {
		categories[item.Category] = struct{}{}
		switch ExpirationStatus(item.ExpirationStatus) {
		case StatusExpired:
			// Expired items need attention too, on top of their own list.
			res.Expired = append(res.Expired, item)
			res.NeedsAttention = append(res.NeedsAttention, item)
		case StatusCritical:
			res.NeedsAttention = append(res.NeedsAttention, item)
		case StatusWarning:
			res.ExpiringSoon = append(res.ExpiringSoon, item)
		}
	}
	res.CategoryCount = len(categories)
	res.ShowAttentionBanner = len(res.NeedsAttention) > 0
	res.ShowExpiringBanner = len(res.ExpiringSoon) > 0 && len(res.NeedsAttention) == 0
	return res, nil
}

func (s *pantryService) GetAnalysis(ctx context.Context, userID string) (domain.AnalysisResponse, error) {
	items, err := s.GetItems(ctx, userID)
	if err != nil {
		return domain.AnalysisResponse{}, err
	}

	res := domain.AnalysisResponse{
		TotalItems:     len(items),
		CategoryCounts: map[string]int{},
	}
	for _, item := range items {
		res.CategoryCounts[item.Category]++
		switch ExpirationStatus(item.ExpirationStatus) {
		case StatusExpired:
			res.ExpirationBuckets.Expired++
		case StatusCritical:
			res.ExpirationBuckets.Critical++
		case StatusWarning:
			res.ExpirationBuckets.Warning++
		case StatusGood:
			res.ExpirationBuckets.Good++
		}
	}
	res.CategoryCount = len(res.CategoryCounts)
	return res, nil
}

// SendExpiryDigest mails the user a summary of everything expired or
// expiring within three days. Nothing is sent when the inventory is calm.
func (s *pantryService) SendExpiryDigest(ctx context.Context, userID string) error {
	if !mailing.IsConfigured() {
		return domain.ErrMailNotConfigured
	}

	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	dashboard, err := s.GetDashboard(ctx, userID)
	if err != nil {
		return err
	}
	if len(dashboard.NeedsAttention) == 0 {
		return nil
	}

	body := buildDigestBody(u.Name, dashboard)
	return mailing.SendMail(u.Email, "Your pantry expiry digest", body)
}

func buildDigestBody(name string, dashboard domain.DashboardResponse) string {
	// NeedsAttention is expired plus critical; keep the sections disjoint.
	var critical []domain.PantryItemResponse
	for _, item := range dashboard.NeedsAttention {
		if ExpirationStatus(item.ExpirationStatus) == StatusCritical {
			critical = append(critical, item)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", name)
	writeDigestSection(&b, "Already expired", dashboard.Expired)
	writeDigestSection(&b, "Expiring in the next 3 days", critical)
	b.WriteString("<p>Open your pantry to plan a recipe around these before they go to waste.</p>")
	return b.String()
}

func writeDigestSection(b *strings.Builder, title string, items []domain.PantryItemResponse) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "<h3>%s</h3><ul>", title)
	for _, item := range items {
		fmt.Fprintf(b, "<li>%s - %g %s (expires %s)</li>", item.Name, item.Quantity, item.Unit, item.ExpirationDate)
	}
	b.WriteString("</ul>")
}

// ownedItem loads an item and enforces that it belongs to the caller.
func (s *pantryService) ownedItem(ctx context.Context, itemID string, userID string) (*entities.PantryItem, error) {
	entity, err := s.pantryRepository.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	if entity.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return entity, nil
}

func entityToItem(e *entities.PantryItem) Item {
	return Item{
		ID:             e.ID.String(),
		Name:           e.Name,
		Quantity:       e.Quantity,
		Unit:           e.Unit,
		Category:       e.Category,
		ExpirationDate: e.ExpirationDate,
		Notes:          e.Notes,
		AddedDate:      e.AddedDate,
		ImageURL:       e.ImageURL,
	}
}

func itemToResponse(item Item, now time.Time) domain.PantryItemResponse {
	res := domain.PantryItemResponse{
		ID:               item.ID,
		Name:             item.Name,
		Quantity:         item.Quantity,
		Unit:             item.Unit,
		Category:         item.Category,
		ExpirationDate:   item.ExpirationDate,
		Notes:            item.Notes,
		AddedDate:        item.AddedDate,
		ImageURL:         item.ImageURL,
		ExpirationStatus: string(Classify(item.ExpirationDate, now)),
	}
	if days, ok := DaysUntil(item.ExpirationDate, now); ok {
		res.DaysUntilExpiration = &days
	}
	return res
}
