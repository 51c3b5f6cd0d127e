package content

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/evalund/glosor/internal/conceptgen"
	"github.com/evalund/glosor/internal/material"
	"github.com/evalund/glosor/internal/terms"
)

// Scope selects which materials feed a game.
type Scope string

const (
	// ScopeSingle drills exactly one material.
	ScopeSingle Scope = "single-material"

	// ScopeMulti drills an explicit material list, or all materials.
	ScopeMulti Scope = "multi-material"

	// ScopeGenerated builds the whole set from the generation
	// capability; any selected materials are advisory context only.
	ScopeGenerated Scope = "generated"
)

// Source describes where a preparation's terms came from.
type Source string

const (
	SourceExisting  Source = "existing"  // every term harvested locally
	SourceGenerated Source = "generated" // whole set from the fallback
	SourceMixed     Source = "mixed"     // some of each
)

// MinPlayableTerms is the hard floor for starting a round-based game:
// a 1-vs-distractors round needs at least three distinct terms.
const MinPlayableTerms = 3

// minGeneratedConcepts is the floor on the fallback request size.
const minGeneratedConcepts = 8

// Request describes one preparation call.
type Request struct {
	Scope        Scope
	MaterialIDs  []string
	AllMaterials bool

	// Language overrides the material language when set.
	Language string

	// MinTerms is the desired term count; falling short triggers the
	// generation fallback.
	MinTerms int

	// MaxDistractors bounds the per-term distractor pool.
	MaxDistractors int

	// TopicHint steers generation when material is thin.
	TopicHint string

	// Grade is the learner's grade level, forwarded to generation.
	Grade int
}

// Preparation is the ready-to-play output contract.
type Preparation struct {
	Terms       []terms.GameTerm
	Language    string
	Source      Source
	NeedsReview bool
	MaterialIDs []string
}

// MaterialSource provides read access to stored materials.
type MaterialSource interface {
	// Material returns the material with the given id, or nil when it
	// does not exist.
	Material(ctx context.Context, id string) (*material.Material, error)

	// Materials returns every stored material.
	Materials(ctx context.Context) ([]*material.Material, error)
}

// MistakeSource provides summed historical miss counts, keyed by
// lowercased term text, across a set of materials.
type MistakeSource interface {
	MistakeWeights(ctx context.Context, materialIDs []string) (map[string]int, error)
}

// Preparer orchestrates the term pipeline: adapters → aggregation →
// generation fallback → distractors → mistake prioritization. All
// collaborators are injected, so the pipeline tests without a store or a
// live provider.
type Preparer struct {
	materials MaterialSource
	mistakes  MistakeSource
	generator conceptgen.Generator
	rng       *rand.Rand
}

// NewPreparer creates a Preparer. generator may be nil when no LLM is
// configured; preparation then fails only if the fallback is needed.
func NewPreparer(materials MaterialSource, mistakes MistakeSource, generator conceptgen.Generator, rng *rand.Rand) *Preparer {
	return &Preparer{
		materials: materials,
		mistakes:  mistakes,
		generator: generator,
		rng:       rng,
	}
}

// Prepare runs the full pipeline and returns a ready-to-play term set.
func (p *Preparer) Prepare(ctx context.Context, req Request) (*Preparation, error) {
	mats, err := p.resolveMaterials(ctx, req)
	if err != nil {
		return nil, err
	}

	var local []terms.Term
	for _, m := range mats {
		local = append(local, terms.FromMaterial(m)...)
	}
	local = terms.Aggregate(local)

	language := req.Language
	if language == "" && len(mats) > 0 {
		language = mats[0].Language
	}
	if language == "" {
		language = "sv"
	}

	pool := local
	generatedAny := false
	if req.Scope == ScopeGenerated || len(local) < req.MinTerms || len(local) == 0 {
		generated, err := p.generateConcepts(ctx, req, mats, language)
		if err != nil {
			return nil, err
		}
		generatedAny = len(generated) > 0

		if req.Scope == ScopeGenerated {
			pool = terms.Aggregate(generated)
		} else {
			pool = terms.Aggregate(append(local, generated...))
		}
	}

	if len(pool) < MinPlayableTerms {
		return nil, ErrInsufficientContent
	}

	game := make([]terms.GameTerm, len(pool))
	for i, t := range pool {
		game[i] = terms.GameTerm{
			Term:        t,
			Distractors: terms.BuildDistractors(t, pool, req.MaxDistractors, p.rng),
		}
	}

	materialIDs := materialIDsOf(mats)
	if len(materialIDs) == 0 {
		materialIDs = []string{material.GeneratedID}
	}

	if p.mistakes != nil {
		weights, err := p.mistakes.MistakeWeights(ctx, materialIDs)
		if err != nil {
			return nil, fmt.Errorf("loading mistake history: %w", err)
		}
		game = terms.Prioritize(game, weights)
	}

	return &Preparation{
		Terms:       game,
		Language:    language,
		Source:      classifySource(pool, generatedAny),
		NeedsReview: generatedAny,
		MaterialIDs: materialIDs,
	}, nil
}

// resolveMaterials applies the scope rules to produce the effective
// material set.
func (p *Preparer) resolveMaterials(ctx context.Context, req Request) ([]*material.Material, error) {
	switch req.Scope {
	case ScopeSingle:
		if len(req.MaterialIDs) == 0 || req.MaterialIDs[0] == "" {
			return nil, ErrNoMaterialSelected
		}
		m, err := p.materials.Material(ctx, req.MaterialIDs[0])
		if err != nil {
			return nil, fmt.Errorf("loading material: %w", err)
		}
		if m == nil {
			return nil, &MaterialNotFoundError{ID: req.MaterialIDs[0]}
		}
		return []*material.Material{m}, nil

	case ScopeMulti:
		mats, err := p.lookupMaterials(ctx, req, true)
		if err != nil {
			return nil, err
		}
		if len(mats) == 0 {
			return nil, ErrNoMaterialsSelected
		}
		return mats, nil

	case ScopeGenerated:
		// Advisory context only; missing ids are skipped, empty is fine.
		return p.lookupMaterials(ctx, req, false)

	default:
		return nil, fmt.Errorf("unknown scope %q", req.Scope)
	}
}

// lookupMaterials fetches the request's material list, or all materials
// when AllMaterials is set. With strict set, a missing id is an error;
// otherwise it is skipped.
func (p *Preparer) lookupMaterials(ctx context.Context, req Request, strict bool) ([]*material.Material, error) {
	if req.AllMaterials {
		mats, err := p.materials.Materials(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing materials: %w", err)
		}
		return mats, nil
	}

	var mats []*material.Material
	for _, id := range req.MaterialIDs {
		if id == "" {
			continue
		}
		m, err := p.materials.Material(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("loading material: %w", err)
		}
		if m == nil {
			if strict {
				return nil, &MaterialNotFoundError{ID: id}
			}
			continue
		}
		mats = append(mats, m)
	}
	return mats, nil
}

// generateConcepts invokes the fallback and adapts the result to terms.
func (p *Preparer) generateConcepts(ctx context.Context, req Request, mats []*material.Material, language string) ([]terms.Term, error) {
	if p.generator == nil {
		return nil, &GenerationError{Err: fmt.Errorf("no concept generator configured")}
	}

	count := req.MinTerms
	if count < minGeneratedConcepts {
		count = minGeneratedConcepts
	}

	concepts, err := p.generator.Generate(ctx, conceptgen.GenerateInput{
		Content:   buildGenerationContext(mats),
		Count:     count,
		Grade:     req.Grade,
		Language:  language,
		TopicHint: req.TopicHint,
	})
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	return terms.FromGeneratedConcepts(concepts, language), nil
}

// buildGenerationContext concatenates material titles and content up to
// the generation character budget.
func buildGenerationContext(mats []*material.Material) string {
	var b strings.Builder
	for _, m := range mats {
		if b.Len() >= conceptgen.ContextCharBudget {
			break
		}
		b.WriteString(m.Title)
		b.WriteString("\n")
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}
	s := b.String()
	if len(s) > conceptgen.ContextCharBudget {
		s = s[:conceptgen.ContextCharBudget]
	}
	return s
}

// classifySource applies the three-way source rule.
func classifySource(pool []terms.Term, generatedAny bool) Source {
	if !generatedAny {
		return SourceExisting
	}
	generated := 0
	for _, t := range pool {
		if t.Source == terms.SourceGenerated {
			generated++
		}
	}
	switch generated {
	case len(pool):
		return SourceGenerated
	case 0:
		return SourceExisting
	default:
		return SourceMixed
	}
}

func materialIDsOf(mats []*material.Material) []string {
	out := make([]string, 0, len(mats))
	for _, m := range mats {
		out = append(out, m.ID)
	}
	return out
}
