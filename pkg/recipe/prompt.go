package recipe

import (
	"fmt"
	"strings"

	"pantry-tracker/domain"
)

const (
	maxRecipeIngredients = 20
	maxIdeaIngredients   = 15
	minServings          = 1
	maxServings          = 20
)

var stylePhrases = map[string]string{
	"simple":   "Keep the recipe simple with common techniques and few steps.",
	"10min":    "Quick recipe, ready in about 10 minutes.",
	"delicacy": "Make it a refined, restaurant-style dish.",
	"protein":  "Make the recipe high in protein.",
}

func clampServings(servings int) int {
	if servings < minServings {
		return minServings
	}
	if servings > maxServings {
		return maxServings
	}
	return servings
}

// ingredientLine renders one selected item for the prompt. A replacement
// swaps the ingredient while still naming the original, and a partial-use
// amount narrows how much of it the recipe may use.
func ingredientLine(sel domain.RecipeSelection) string {
	line := sel.Name
	if sel.Quantity > 0 && sel.Unit != "" {
		line = fmt.Sprintf("%s (%g %s available)", sel.Name, sel.Quantity, sel.Unit)
	}
	if sel.ReplaceWith != "" {
		line = fmt.Sprintf("%s (%s replaced with %s)", sel.ReplaceWith, sel.Name, sel.ReplaceWith)
	}
	if sel.UseAmount != "" {
		unit := sel.UseUnit
		if unit == "" {
			unit = sel.Unit
		}
		line = fmt.Sprintf("%s: use only %s %s", line, sel.UseAmount, strings.TrimSpace(unit))
	}
	return line
}

// buildRecipePrompt assembles the generation prompt. The ingredient list is
// capped so oversized inventories cannot blow up the request, and the reply
// contract demands strict JSON with a fixed shape.
func buildRecipePrompt(req domain.GenerateRecipeRequest) string {
	ingredients := req.Ingredients
	if len(ingredients) > maxRecipeIngredients {
		ingredients = ingredients[:maxRecipeIngredients]
	}

	lines := make([]string, 0, len(ingredients))
	for _, sel := range ingredients {
		lines = append(lines, "- "+ingredientLine(sel))
	}

	var b strings.Builder
	b.WriteString("Create a recipe using only these pantry ingredients plus basic staples (salt, pepper, oil, water):\n")
	b.WriteString(strings.Join(lines, "\n"))
	fmt.Fprintf(&b, "\n\nThe recipe must serve %d servings.", clampServings(req.Servings))
	if phrase, ok := stylePhrases[req.Style]; ok {
		b.WriteString(" " + phrase)
	}
	if req.RecipeFocus != "" {
		fmt.Fprintf(&b, " Focus: %s.", req.RecipeFocus)
	}
	b.WriteString("\n\nRespond with strict JSON only, no markdown, no commentary, exactly this shape:\n")
	b.WriteString(`{"name": "...", "description": "...", "cookTime": "...", "difficulty": "Easy|Medium|Hard", "servings": 2, "calories": 350, "ingredients": [{"name": "...", "amount": "..."}], "instructions": ["step 1", "step 2"]}`)
	return b.String()
}

// buildIdeasPrompt asks for short dish names only. Degrades the same way the
// recipe prompt does when the ingredient list is oversized.
func buildIdeasPrompt(ingredients []string) string {
	if len(ingredients) > maxIdeaIngredients {
		ingredients = ingredients[:maxIdeaIngredients]
	}

	var b strings.Builder
	b.WriteString("Suggest 6 to 8 short dish ideas that could be cooked from these pantry ingredients: ")
	b.WriteString(strings.Join(ingredients, ", "))
	b.WriteString(".\n\nRespond with strict JSON only, exactly this shape:\n")
	b.WriteString(`{"ideas": ["dish one", "dish two"]}`)
	return b.String()
}
