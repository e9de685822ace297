package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"sdkmeta/internal/ports"
	"sdkmeta/internal/shared"
	"sdkmeta/internal/types"
)

type ClosureResolver struct {
	Catalog ports.DriverCatalogPort
}

func NewClosureResolver(catalog ports.DriverCatalogPort) ClosureResolver {
	return ClosureResolver{Catalog: catalog}
}

// Resolve returns the smallest set of driver names that contains every seed
// and every dependency of every member. Any name missing from the catalog
// aborts the resolution; no partial set is returned.
func (r ClosureResolver) Resolve(ctx context.Context, seeds []string) (types.DriverSet, error) {
	if r.Catalog == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("closure resolver requires a driver catalog")
	}

	result := types.DriverSet{}
	for _, seed := range seeds {
		name := strings.TrimSpace(seed)
		if _, ok := r.Catalog.Driver(name); !ok {
			return nil, driverNotFound(name, "")
		}
		result[name] = struct{}{}
	}

	iterations := 0
	for {
		iterations++
		candidates := map[string]string{}
		for _, member := range result.Names() {
			driver, _ := r.Catalog.Driver(member)
			for _, dep := range driver.Dependencies {
				if _, seen := candidates[dep]; !seen {
					candidates[dep] = member
				}
			}
		}

		added := 0
		for _, dep := range shared.SortedKeys(candidates) {
			if _, ok := r.Catalog.Driver(dep); !ok {
				return nil, driverNotFound(dep, candidates[dep])
			}
			if result.Has(dep) {
				continue
			}
			result[dep] = struct{}{}
			added++
		}
		if added == 0 {
			break
		}
	}

	log.Ctx(ctx).Debug().
		Int("seeds", len(seeds)).
		Int("drivers", len(result)).
		Int("iterations", iterations).
		Msg("driver closure resolved")
	return result, nil
}

func driverNotFound(name string, requiredBy string) error {
	msg := fmt.Sprintf("%s: %q", types.MsgDriverNotFound, name)
	if requiredBy != "" {
		msg = fmt.Sprintf("%s (required by %q)", msg, requiredBy)
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(msg)
}
