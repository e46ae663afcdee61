// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
	"nullgram.org/x/buildcfg/pkg/effective"
	"nullgram.org/x/buildcfg/pkg/layer"
	"nullgram.org/x/buildcfg/pkg/variant"
)

// ResolveAll resolves every variant of the set concurrently.
// It returns the first error encountered; results are identical to resolving one by one.
func (r *Resolver) ResolveAll(ctx context.Context, layers []*layer.Layer) (map[variant.Name]*effective.Config, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	result := map[variant.Name]*effective.Config{}

	for _, v := range r.variants.Names() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cfg, err := r.Resolve(v, layers)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			result[v] = cfg
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
