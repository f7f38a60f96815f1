package host

import "fmt"

// PruneResult records which objects survived a prune pass and which were
// discarded.
type PruneResult struct {
	// Kept maps each surviving candidate to the name of the intersection
	// object that replaced it.
	Kept map[string]string

	// Removed lists candidates whose intersection with the mask was empty.
	Removed []string
}

// PruneByMask intersects every candidate object with the mask and keeps only
// the overlapping material. A candidate whose intersection has zero vertices
// is discarded together with the empty intersection object; a nonempty
// intersection replaces the candidate in the document. Falling entirely
// outside the mask is an expected outcome for a candidate, not a failure.
//
// The mask object itself is left in place; remove it separately if it was
// only a construction aid. The document is recomputed once at the end.
func PruneByMask(doc Document, mask string, candidates []string) (*PruneResult, error) {
	if _, ok := doc.Object(mask); !ok {
		return nil, &NotFoundError{Name: mask}
	}

	result := &PruneResult{Kept: make(map[string]string)}
	for _, name := range candidates {
		if name == mask {
			continue
		}

		inter, err := doc.Intersect(name+"_masked", name, mask)
		if err != nil {
			return nil, fmt.Errorf("prune %q: %w", name, err)
		}

		if inter.Shape.Empty() {
			if err := doc.Remove(inter.Name); err != nil {
				return nil, fmt.Errorf("prune %q: %w", name, err)
			}
			if err := doc.Remove(name); err != nil {
				return nil, fmt.Errorf("prune %q: %w", name, err)
			}
			result.Removed = append(result.Removed, name)
			continue
		}

		inter.Label = name
		if err := doc.Remove(name); err != nil {
			return nil, fmt.Errorf("prune %q: %w", name, err)
		}
		result.Kept[name] = inter.Name
	}

	if err := doc.Recompute(); err != nil {
		return nil, err
	}
	return result, nil
}
