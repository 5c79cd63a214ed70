package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pantry-tracker/domain"
	"pantry-tracker/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		GenerateRecipe(ctx context.Context, req domain.GenerateRecipeRequest) (domain.GeneratedRecipe, error)
		SuggestRecipes(ctx context.Context, req domain.SuggestRecipesRequest) (domain.SuggestRecipesResponse, error)
		SaveRecipe(ctx context.Context, req domain.SaveRecipeRequest, userID string) (domain.SavedRecipeResponse, error)
		GetRecipes(ctx context.Context, userID string) ([]domain.SavedRecipeResponse, error)
		UpdateRecipeTags(ctx context.Context, recipeID string, req domain.UpdateRecipeTagsRequest, userID string) (domain.SavedRecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
	}

	recipeService struct {
		recipeRepository RecipeRepository
		completion       CompletionClient
	}
)

func NewRecipeService(recipeRepository RecipeRepository, completion CompletionClient) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		completion:       completion,
	}
}

// GenerateRecipe builds a constrained prompt from the selected items, asks
// the completion API for strict JSON and parses the reply after stripping
// any markdown fences around it.
func (s *recipeService) GenerateRecipe(ctx context.Context, req domain.GenerateRecipeRequest) (domain.GeneratedRecipe, error) {
	if len(req.Ingredients) == 0 {
		return domain.GeneratedRecipe{}, domain.ErrNoIngredients
	}

	reply, err := s.completion.Complete(ctx, buildRecipePrompt(req))
	if err != nil {
		return domain.GeneratedRecipe{}, err
	}

	var recipe domain.GeneratedRecipe
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &recipe); err != nil {
		return domain.GeneratedRecipe{}, fmt.Errorf("%w: %v", domain.ErrMalformedRecipeReply, err)
	}
	if recipe.Name == "" {
		return domain.GeneratedRecipe{}, domain.ErrMalformedRecipeReply
	}
	return recipe, nil
}

// SuggestRecipes degrades instead of failing: any API or parse problem
// yields an empty idea list, since ideas are a nicety rather than a result
// the caller depends on.
func (s *recipeService) SuggestRecipes(ctx context.Context, req domain.SuggestRecipesRequest) (domain.SuggestRecipesResponse, error) {
	if len(req.Ingredients) == 0 {
		return domain.SuggestRecipesResponse{Ideas: []string{}}, nil
	}

	reply, err := s.completion.Complete(ctx, buildIdeasPrompt(req.Ingredients))
	if err != nil {
		return domain.SuggestRecipesResponse{Ideas: []string{}}, nil
	}

	var parsed struct {
		Ideas []string `json:"ideas"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &parsed); err != nil || parsed.Ideas == nil {
		return domain.SuggestRecipesResponse{Ideas: []string{}}, nil
	}
	return domain.SuggestRecipesResponse{Ideas: parsed.Ideas}, nil
}

func (s *recipeService) SaveRecipe(ctx context.Context, req domain.SaveRecipeRequest, userID string) (domain.SavedRecipeResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return domain.SavedRecipeResponse{}, domain.ErrParseUUID
	}

	ingredients, err := json.Marshal(nonNilIngredients(req.Ingredients))
	if err != nil {
		return domain.SavedRecipeResponse{}, err
	}
	instructions, err := json.Marshal(nonNilStrings(req.Instructions))
	if err != nil {
		return domain.SavedRecipeResponse{}, err
	}
	userTags, err := json.Marshal(nonNilStrings(req.UserTags))
	if err != nil {
		return domain.SavedRecipeResponse{}, err
	}

	entity := entities.SavedRecipe{
		UserID:       uid,
		Name:         req.Name,
		Description:  req.Description,
		CookTime:     req.CookTime,
		Difficulty:   req.Difficulty,
		Servings:     req.Servings,
		Calories:     req.Calories,
		Ingredients:  string(ingredients),
		Instructions: string(instructions),
		UserTags:     string(userTags),
		SavedAt:      time.Now(),
	}
	if err := s.recipeRepository.SaveRecipe(ctx, &entity); err != nil {
		return domain.SavedRecipeResponse{}, err
	}
	return entityToSavedRecipe(&entity), nil
}

func (s *recipeService) GetRecipes(ctx context.Context, userID string) ([]domain.SavedRecipeResponse, error) {
	rows, err := s.recipeRepository.GetRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SavedRecipeResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, entityToSavedRecipe(row))
	}
	return out, nil
}

func (s *recipeService) UpdateRecipeTags(ctx context.Context, recipeID string, req domain.UpdateRecipeTagsRequest, userID string) (domain.SavedRecipeResponse, error) {
	entity, err := s.ownedRecipe(ctx, recipeID, userID)
	if err != nil {
		return domain.SavedRecipeResponse{}, err
	}

	userTags, err := json.Marshal(nonNilStrings(req.UserTags))
	if err != nil {
		return domain.SavedRecipeResponse{}, err
	}
	if err := s.recipeRepository.UpdateRecipeTags(ctx, recipeID, string(userTags)); err != nil {
		return domain.SavedRecipeResponse{}, err
	}

	entity.UserTags = string(userTags)
	return entityToSavedRecipe(entity), nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	if _, err := s.ownedRecipe(ctx, recipeID, userID); err != nil {
		return err
	}
	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

func (s *recipeService) ownedRecipe(ctx context.Context, recipeID string, userID string) (*entities.SavedRecipe, error) {
	entity, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if entity.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedRecipe
	}
	return entity, nil
}

func entityToSavedRecipe(e *entities.SavedRecipe) domain.SavedRecipeResponse {
	res := domain.SavedRecipeResponse{
		ID:           e.ID.String(),
		Name:         e.Name,
		Description:  e.Description,
		CookTime:     e.CookTime,
		Difficulty:   e.Difficulty,
		Servings:     e.Servings,
		Calories:     e.Calories,
		Ingredients:  []domain.RecipeIngredient{},
		Instructions: []string{},
		UserTags:     []string{},
		SavedAt:      e.SavedAt,
	}
	_ = json.Unmarshal([]byte(e.Ingredients), &res.Ingredients)
	_ = json.Unmarshal([]byte(e.Instructions), &res.Instructions)
	_ = json.Unmarshal([]byte(e.UserTags), &res.UserTags)
	return res
}

func nonNilIngredients(in []domain.RecipeIngredient) []domain.RecipeIngredient {
	if in == nil {
		return []domain.RecipeIngredient{}
	}
	return in
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
