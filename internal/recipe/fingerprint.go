package recipe

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
)

// recipeNamespace scopes name-based recipe IDs
var recipeNamespace = uuid.MustParse("6f1c4a52-3b8e-4d0a-9a57-0e4d2b7c9f31")

type canonicalStep struct {
	Deploy string             `json:"deploy"`
	Props  map[string]*string `json:"props"`
}

// Canonicalize returns a stable JSON encoding of the recipe.
// encoding/json sorts map keys, so equal recipes encode identically.
func (r Recipe) Canonicalize() ([]byte, error) {
	steps := make([]*canonicalStep, len(r.steps))
	for i, s := range r.steps {
		if s == nil {
			continue
		}
		cs := &canonicalStep{
			Deploy: s.deploy.String(),
			Props:  make(map[string]*string, len(s.properties)),
		}
		for col, p := range s.properties {
			if p == nil {
				cs.Props[string(col)] = nil
				continue
			}
			raw := p.typ.String() + ":" + p.raw
			cs.Props[string(col)] = &raw
		}
		steps[i] = cs
	}
	return json.Marshal(steps)
}

// Fingerprint returns the blake3 hash of the canonical encoding
func (r Recipe) Fingerprint() (string, error) {
	canonical, err := r.Canonicalize()
	if err != nil {
		return "", fmt.Errorf("canonicalize recipe: %w", err)
	}

	hasher := blake3.New()
	if _, err := hasher.Write(canonical); err != nil {
		return "", fmt.Errorf("hash recipe: %w", err)
	}

	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}

// ID returns a name-based UUID derived from the fingerprint.
// Structurally equal recipes have the same ID.
func (r Recipe) ID() (uuid.UUID, error) {
	fp, err := r.Fingerprint()
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.NewSHA1(recipeNamespace, []byte(fp)), nil
}
