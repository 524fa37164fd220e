package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"philcali.me/barmanager/internal/api"
	"philcali.me/barmanager/internal/editor"
)

// DraftFile is a cocktail recipe as written by hand. Glasses, garnishes and
// ingredients may be named by id or by name.
type DraftFile struct {
	ID          string      `yaml:"id,omitempty"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Price       *float64    `yaml:"price"`
	Glass       string      `yaml:"glass"`
	Ice         string      `yaml:"ice,omitempty"`
	Garnish     string      `yaml:"garnish,omitempty"`
	Image       string      `yaml:"image,omitempty"`
	Tags        []string    `yaml:"tags,omitempty"`
	Steps       []StepEntry `yaml:"steps"`
}

type StepEntry struct {
	Mixing      *bool       `yaml:"mixing"`
	Tool        string      `yaml:"tool,omitempty"`
	Ingredients []LineEntry `yaml:"ingredients,omitempty"`
}

type LineEntry struct {
	Ingredient string   `yaml:"ingredient"`
	Amount     *float64 `yaml:"amount"`
	Unit       string   `yaml:"unit,omitempty"`
}

// GarnishFile is a garnish as written by hand.
type GarnishFile struct {
	ID          string   `yaml:"id,omitempty"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Price       *float64 `yaml:"price"`
	Image       string   `yaml:"image,omitempty"`
}

func readYAML[T any](path string) (T, error) {
	var out T
	raw, err := os.ReadFile(path)
	if err != nil {
		return out, err
	}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("parse %s: %w", path, err)
	}
	return out, nil
}

func readImage(dir, image string) (string, []byte, error) {
	path := image
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	content, err := os.ReadFile(path)
	return filepath.Base(path), content, err
}

func resolveGlass(catalog *editor.Catalog, ref string) string {
	if glass, ok := catalog.Glass(ref); ok {
		return glass.Id
	}
	if glass, ok := catalog.GlassByName(ref); ok {
		return glass.Id
	}
	return ref
}

func resolveIngredient(catalog *editor.Catalog, ref string) string {
	if ingredient, ok := catalog.Ingredient(ref); ok {
		return ingredient.Id
	}
	if ingredient, ok := catalog.IngredientByName(ref); ok {
		return ingredient.Id
	}
	return ref
}

func resolveGarnish(catalog *editor.Catalog, ref string) string {
	if garnish, ok := catalog.Garnish(ref); ok {
		return garnish.Id
	}
	if catalog != nil && catalog.Garnishes.State == editor.Loaded {
		for _, garnish := range catalog.Garnishes.Items {
			if strings.EqualFold(garnish.Name, ref) {
				return garnish.Id
			}
		}
	}
	return ref
}

// ToDraft fills a draft through the editor's setters. Only malformed
// values fail here; missing ones are left for validation to report.
func (f DraftFile) ToDraft(catalog *editor.Catalog, dir string) (*editor.RecipeDraft, error) {
	d := editor.NewDraft()
	d.ID = f.ID
	d.SetName(f.Name)
	d.SetDescription(f.Description)
	if f.Price != nil {
		if err := d.SetPrice(*f.Price); err != nil {
			return nil, fmt.Errorf("price: %w", err)
		}
	}
	if f.Glass != "" {
		d.SetGlass(resolveGlass(catalog, f.Glass))
	}
	if f.Ice != "" {
		if err := d.SetGlassWithIce(editor.IceType(f.Ice)); err != nil {
			return nil, fmt.Errorf("ice: %w", err)
		}
	}
	if f.Garnish != "" {
		d.SetGarnish(resolveGarnish(catalog, f.Garnish))
	}
	if err := d.SetTags(f.Tags); err != nil {
		return nil, fmt.Errorf("tags: %w", err)
	}
	if f.Image != "" {
		name, content, err := readImage(dir, f.Image)
		if err != nil {
			return nil, fmt.Errorf("image: %w", err)
		}
		if err := d.AttachImage(name, content); err != nil {
			return nil, fmt.Errorf("image: %w", err)
		}
	}
	for i, entry := range f.Steps {
		if err := entry.apply(d, d.AddStep(), catalog); err != nil {
			return nil, fmt.Errorf("steps.%d: %w", i, err)
		}
	}
	return d, nil
}

func (s StepEntry) apply(d *editor.RecipeDraft, index int, catalog *editor.Catalog) error {
	if s.Mixing == nil {
		d.Steps[index].Mixing = nil
	} else if err := d.SetStepMixing(index, *s.Mixing); err != nil {
		return err
	}
	if s.Tool != "" {
		if err := d.SetStepTool(index, editor.Tool(strings.ToUpper(s.Tool))); err != nil {
			return err
		}
	}
	if len(s.Ingredients) == 0 && d.CanRemoveIngredientLine(index) {
		return d.RemoveIngredientLine(index, 0)
	}
	for j, line := range s.Ingredients {
		if j > 0 {
			if _, err := d.AddIngredientLine(index); err != nil {
				return err
			}
		}
		if err := d.SetLineIngredient(index, j, resolveIngredient(catalog, line.Ingredient)); err != nil {
			return err
		}
		if line.Amount != nil {
			if err := d.SetLineAmount(index, j, *line.Amount); err != nil {
				return err
			}
		} else if err := d.ClearLineAmount(index, j); err != nil {
			return err
		}
		if line.Unit != "" {
			if err := d.SetLineUnit(index, j, editor.Unit(strings.ToUpper(line.Unit))); err != nil {
				return fmt.Errorf("ingredients.%d: %w", j, err)
			}
		}
	}
	return nil
}

// DraftFileFrom writes a draft back out, naming catalog entries by name
// where they resolve. The image is not carried over.
func DraftFileFrom(d *editor.RecipeDraft, catalog *editor.Catalog) DraftFile {
	f := DraftFile{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Glass:       d.GlassID,
		Ice:         string(d.GlassWithIce),
		Garnish:     d.GarnishID,
		Tags:        append([]string{}, d.Tags...),
		Steps:       make([]StepEntry, len(d.Steps)),
	}
	if glass, ok := catalog.Glass(d.GlassID); ok {
		f.Glass = glass.Name
	}
	if garnish, ok := catalog.Garnish(d.GarnishID); ok {
		f.Garnish = garnish.Name
	}
	for i, step := range d.Steps {
		entry := StepEntry{Mixing: step.Mixing, Tool: string(step.Tool)}
		for _, line := range step.Ingredients {
			name := line.IngredientID
			if ingredient, ok := catalog.Ingredient(line.IngredientID); ok {
				name = ingredient.Name
			}
			entry.Ingredients = append(entry.Ingredients, LineEntry{
				Ingredient: name,
				Amount:     line.Amount,
				Unit:       string(line.Unit),
			})
		}
		f.Steps[i] = entry
	}
	return f
}

func (f GarnishFile) ToDraft(dir string) (*editor.GarnishDraft, error) {
	d := editor.NewGarnishDraft()
	d.ID = f.ID
	d.Name = f.Name
	d.Description = f.Description
	if f.Price != nil {
		if err := d.SetPrice(*f.Price); err != nil {
			return nil, fmt.Errorf("price: %w", err)
		}
	}
	if f.Image != "" {
		name, content, err := readImage(dir, f.Image)
		if err != nil {
			return nil, fmt.Errorf("image: %w", err)
		}
		if err := d.AttachImage(name, content); err != nil {
			return nil, fmt.Errorf("image: %w", err)
		}
	}
	return d, nil
}

func cocktailTags(cocktail api.Cocktail) string {
	if len(cocktail.Tags) == 0 {
		return "-"
	}
	return strings.Join(cocktail.Tags, ", ")
}

func yamlDecode(text string, out any) error {
	return yaml.Unmarshal([]byte(text), out)
}
