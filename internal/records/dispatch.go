package records

import (
	"fmt"
	"regexp"

	"dgkit/internal/xmlstream"
)

// filenamePattern is the authoritative input filename shape (spec.md §6):
// discogs_YYYYMMDD_<entity>(_sample_<N>)?.xml.gz
var filenamePattern = regexp.MustCompile(`discogs_\d{8}_(artists|labels|masters|releases)(_sample_\d+)?\.xml\.gz$`)

// EntityFromFilename extracts the entity name from a filename matching
// filenamePattern, or reports ok=false.
func EntityFromFilename(name string) (entity string, ok bool) {
	m := filenamePattern.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// TargetTag gives the extractor (C2) the element tag and the
// nesting-filter flag (requiresRootParent) for a given entity name.
func TargetTag(entity string) (tag string, requiresRootParent bool, err error) {
	switch entity {
	case "artists":
		return "artist", false, nil
	case "labels":
		return "label", true, nil
	case "masters":
		return "master", false, nil
	case "releases":
		return "release", false, nil
	default:
		return "", false, fmt.Errorf("unknown entity %q", entity)
	}
}

// Parse dispatches a tracked element to the parser for the given entity
// name, returning records as a slice of `any` so the pipeline driver can
// route them through the filter chain and sinks uniformly.
func Parse(entity string, el *xmlstream.Tracking) ([]any, error) {
	switch entity {
	case "artists":
		recs, err := ParseArtist(el)
		return toAny(recs, err)
	case "labels":
		recs, err := ParseLabel(el)
		return toAny(recs, err)
	case "masters":
		recs, err := ParseMaster(el)
		return toAny(recs, err)
	case "releases":
		recs, err := ParseRelease(el)
		return toAny(recs, err)
	default:
		return nil, fmt.Errorf("unknown entity %q", entity)
	}
}

func toAny[T any](recs []T, err error) ([]any, error) {
	if err != nil {
		return nil, err
	}
	out := make([]any, len(recs))
	for i, r := range recs {
		out[i] = r
	}
	return out, nil
}
