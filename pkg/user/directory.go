package user

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type INameSource interface {
	Usernames(ctx context.Context, ids []string) (map[string]string, error)
}

// Directory resolves user ids to usernames through a small expiring cache,
// so list views do not hit the users table for every request.
type Directory struct {
	source INameSource
	cache  *expirable.LRU[string, string]
}

func NewDirectory(source INameSource, size int, ttl time.Duration) *Directory {
	return &Directory{
		source: source,
		cache:  expirable.NewLRU[string, string](size, nil, ttl),
	}
}

func (d *Directory) Usernames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	missing := []string{}
	queued := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, done := names[id]; done || queued[id] || id == "" {
			continue
		}
		if name, ok := d.cache.Get(id); ok {
			names[id] = name
			continue
		}
		queued[id] = true
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return names, nil
	}

	found, err := d.source.Usernames(ctx, missing)
	if err != nil {
		return names, err
	}
	for id, name := range found {
		d.cache.Add(id, name)
		names[id] = name
	}
	return names, nil
}
