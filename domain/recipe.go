package domain

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	MessageSuccessGenerateRecipe = "recipe generated successfully"
	MessageSuccessSuggestIdeas   = "recipe ideas retrieved successfully"
	MessageSuccessSaveRecipe     = "recipe saved successfully"
	MessageSuccessGetRecipes     = "saved recipes retrieved successfully"
	MessageSuccessUpdateTags     = "recipe tags updated successfully"
	MessageSuccessDeleteRecipe   = "recipe deleted successfully"

	MessageFailedGenerateRecipe = "failed to generate recipe"
	MessageFailedSuggestIdeas   = "failed to retrieve recipe ideas"
	MessageFailedSaveRecipe     = "failed to save recipe"
	MessageFailedGetRecipes     = "failed to retrieve saved recipes"
	MessageFailedUpdateTags     = "failed to update recipe tags"
	MessageFailedDeleteRecipe   = "failed to delete recipe"

	ErrRecipeNotFound        = errors.New("recipe not found")
	ErrNoIngredients         = errors.New("provide at least one ingredient")
	ErrCompletionAPIFailed   = errors.New("recipe generation failed")
	ErrCompletionKeyMissing  = errors.New("completion API key not configured")
	ErrMalformedRecipeReply  = errors.New("malformed recipe in completion reply")
	ErrUnauthorizedRecipe    = errors.New("unauthorized access to recipe")
)

// Recipe user tags are a fixed two-value set.
const (
	TagBestWorked = "best-worked"
	TagGreatTaste = "great-taste"
)

type (
	// RecipeSelection is one inventory item chosen for generation, possibly
	// overridden with a partial-use amount or a replacement ingredient.
	RecipeSelection struct {
		Name        string  `json:"name" validate:"required"`
		Quantity    float64 `json:"quantity" validate:"omitempty,gt=0"`
		Unit        string  `json:"unit" validate:"omitempty"`
		UseAmount   string  `json:"useAmount,omitempty" validate:"omitempty"`
		UseUnit     string  `json:"useUnit,omitempty" validate:"omitempty"`
		ReplaceWith string  `json:"replaceWith,omitempty" validate:"omitempty"`
	}

	GenerateRecipeRequest struct {
		Ingredients []RecipeSelection `json:"ingredients" validate:"required,min=1,dive"`
		Servings    int               `json:"servings" validate:"omitempty"`
		Style       string            `json:"style" validate:"omitempty,oneof=simple 10min delicacy protein"`
		RecipeFocus string            `json:"recipeFocus" validate:"omitempty"`
	}

	// RecipeIngredient is the tagged form every ingredient resolves to at
	// the API boundary: a bare string becomes {Name: s, Amount: ""}.
	RecipeIngredient struct {
		Name   string `json:"name"`
		Amount string `json:"amount,omitempty"`
	}

	GeneratedRecipe struct {
		Name         string             `json:"name"`
		Description  string             `json:"description,omitempty"`
		CookTime     string             `json:"cookTime,omitempty"`
		Difficulty   string             `json:"difficulty,omitempty"`
		Servings     int                `json:"servings,omitempty"`
		Calories     float64            `json:"calories,omitempty"`
		Ingredients  []RecipeIngredient `json:"ingredients"`
		Instructions []string           `json:"instructions"`
	}

	SuggestRecipesRequest struct {
		Ingredients []string `json:"ingredients"`
	}

	SuggestRecipesResponse struct {
		Ideas []string `json:"ideas"`
	}

	SaveRecipeRequest struct {
		Name         string             `json:"name" validate:"required"`
		Description  string             `json:"description" validate:"omitempty"`
		CookTime     string             `json:"cookTime" validate:"omitempty"`
		Difficulty   string             `json:"difficulty" validate:"omitempty"`
		Servings     int                `json:"servings" validate:"omitempty,min=0"`
		Calories     float64            `json:"calories" validate:"omitempty,min=0"`
		Ingredients  []RecipeIngredient `json:"ingredients" validate:"omitempty,dive"`
		Instructions []string           `json:"instructions" validate:"omitempty"`
		UserTags     []string           `json:"userTags" validate:"omitempty,dive,oneof=best-worked great-taste"`
	}

	UpdateRecipeTagsRequest struct {
		UserTags []string `json:"userTags" validate:"omitempty,dive,oneof=best-worked great-taste"`
	}

	SavedRecipeResponse struct {
		ID           string             `json:"id"`
		Name         string             `json:"name"`
		Description  string             `json:"description,omitempty"`
		CookTime     string             `json:"cook_time,omitempty"`
		Difficulty   string             `json:"difficulty,omitempty"`
		Servings     int                `json:"servings,omitempty"`
		Calories     float64            `json:"calories,omitempty"`
		Ingredients  []RecipeIngredient `json:"ingredients"`
		Instructions []string           `json:"instructions"`
		UserTags     []string           `json:"user_tags"`
		SavedAt      time.Time          `json:"saved_at"`
	}
)

// UnmarshalJSON accepts both the structured {name, amount} form and the bare
// string form some completion replies use for ingredient lines.
func (i *RecipeIngredient) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		i.Name = plain
		i.Amount = ""
		return nil
	}

	type alias RecipeIngredient
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*i = RecipeIngredient(a)
	return nil
}
