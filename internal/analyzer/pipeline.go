package analyzer

import (
	"recipewatch/internal/config"
	"recipewatch/internal/recipe"
	"recipewatch/internal/services"
)

// Input is one post presented to the pipeline. Title is empty for comments.
// ThreadText is the submission title, selftext and every comment body of the
// thread the post belongs to.
type Input struct {
	Title      string
	Body       string
	ThreadText string
}

// Pipeline runs detection, extraction and classification for one post.
type Pipeline struct {
	Detector  Detector
	Extractor Extractor
	Titles    TitleClassifier
	Meals     MealTypeClassifier
}

// NewPipeline wires a pipeline from shared terms and a title catalog.
func NewPipeline(terms Terms, catalog Catalog, opts ...ExtractorOption) *Pipeline {
	return &Pipeline{
		Detector:  NewDetector(terms),
		Extractor: NewExtractor(terms, opts...),
		Titles:    NewTitleClassifier(catalog),
		Meals:     NewMealTypeClassifier(terms),
	}
}

// Analyze returns the refined recipe parts for in and true when the body is a
// recipe. Title, ingredients and instructions come from the post alone; the
// meal type comes from the whole thread.
func (p *Pipeline) Analyze(in Input) (recipe.RefinedPost, bool) {
	if !p.Detector.IsRecipe(in.Body) {
		return recipe.RefinedPost{}, false
	}
	return recipe.RefinedPost{
		Title:        p.Titles.Classify(in.Title, in.Body),
		Ingredients:  p.Extractor.Ingredients(in.Body),
		Instructions: p.Extractor.Instructions(in.Body),
		Type:         p.Meals.Classify(in.ThreadText),
	}, true
}

// PipelineFromConfig loads the configured catalog and builds a pipeline with
// the default terms and any configured instruction stop markers.
func PipelineFromConfig(cfg *config.Config) (*Pipeline, error) {
	catalog, err := LoadCatalog(cfg.Analyzer.CatalogPath)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "analyzer", "load catalog", cfg.Analyzer.CatalogPath, err)
	}
	return NewPipeline(DefaultTerms(), catalog, WithInstructionStop(cfg.Analyzer.InstructionStopMarkers...)), nil
}
