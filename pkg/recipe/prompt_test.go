package recipe

import (
	"fmt"
	"strings"
	"testing"

	"pantry-tracker/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuildRecipePrompt(t *testing.T) {
	req := domain.GenerateRecipeRequest{
		Ingredients: []domain.RecipeSelection{
			{Name: "Tomato", Quantity: 4, Unit: "pieces"},
			{Name: "Pasta", Quantity: 500, Unit: "g", UseAmount: "200", UseUnit: "g"},
			{Name: "Cream", Quantity: 1, Unit: "cups", ReplaceWith: "Milk"},
		},
		Servings: 2,
		Style:    "10min",
	}

	prompt := buildRecipePrompt(req)

	assert.Contains(t, prompt, "Tomato (4 pieces available)")
	assert.Contains(t, prompt, "Pasta (500 g available): use only 200 g")
	assert.Contains(t, prompt, "Milk (Cream replaced with Milk)")
	assert.Contains(t, prompt, "serve 2 servings")
	assert.Contains(t, prompt, "ready in about 10 minutes")
	assert.Contains(t, prompt, "strict JSON")
}

func TestBuildRecipePromptRecipeFocus(t *testing.T) {
	prompt := buildRecipePrompt(domain.GenerateRecipeRequest{
		Ingredients: []domain.RecipeSelection{{Name: "Rice"}},
		Servings:    4,
		RecipeFocus: "use up the rice",
	})
	assert.Contains(t, prompt, "Focus: use up the rice.")
}

func TestBuildRecipePromptCapsIngredients(t *testing.T) {
	var selections []domain.RecipeSelection
	for i := 0; i < 30; i++ {
		selections = append(selections, domain.RecipeSelection{Name: fmt.Sprintf("Ingredient%d", i)})
	}

	prompt := buildRecipePrompt(domain.GenerateRecipeRequest{Ingredients: selections, Servings: 2})

	assert.Contains(t, prompt, "Ingredient19")
	assert.NotContains(t, prompt, "Ingredient20")
}

func TestClampServings(t *testing.T) {
	assert.Equal(t, 1, clampServings(0))
	assert.Equal(t, 1, clampServings(-5))
	assert.Equal(t, 2, clampServings(2))
	assert.Equal(t, 20, clampServings(20))
	assert.Equal(t, 20, clampServings(100))
}

func TestBuildIdeasPromptCapsIngredients(t *testing.T) {
	var ingredients []string
	for i := 0; i < 25; i++ {
		ingredients = append(ingredients, fmt.Sprintf("Ingredient%d", i))
	}

	prompt := buildIdeasPrompt(ingredients)

	assert.Contains(t, prompt, "Ingredient14")
	assert.NotContains(t, prompt, "Ingredient15")
	assert.Contains(t, prompt, `{"ideas"`)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"plain json", `{"name": "Soup"}`, `{"name": "Soup"}`},
		{"json fence", "```json\n{\"name\": \"Soup\"}\n```", `{"name": "Soup"}`},
		{"bare fence", "```\n{\"name\": \"Soup\"}\n```", `{"name": "Soup"}`},
		{"surrounding whitespace", "  ```json\n{\"name\": \"Soup\"}\n```  ", `{"name": "Soup"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, strings.TrimSpace(stripCodeFence(tt.reply)))
		})
	}
}
