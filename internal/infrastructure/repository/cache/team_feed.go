package cache

import (
	"context"

	"github.com/riskibarqy/gamewatchr/internal/domain/league"
	"github.com/riskibarqy/gamewatchr/internal/domain/team"
	basecache "github.com/riskibarqy/gamewatchr/internal/platform/cache"
	"github.com/riskibarqy/gamewatchr/internal/platform/logging"
)

const teamFeedKeyPrefix = "team:feed:"

func teamFeedKey(leagueID string) string {
	return teamFeedKeyPrefix + league.NormalizeID(leagueID)
}

// TeamFeed caches successful league fetches in process. Failures always reach
// the caller so the aggregator can fall back per league.
type TeamFeed struct {
	next  team.Feed
	cache *basecache.Store[[]team.Team]
}

func NewTeamFeed(next team.Feed, cache *basecache.Store[[]team.Team]) *TeamFeed {
	return &TeamFeed{next: next, cache: cache}
}

func (f *TeamFeed) FetchTeams(ctx context.Context, leagueID string, locator league.FeedLocator) ([]team.Team, error) {
	items, err := f.cache.GetOrLoad(ctx, teamFeedKey(leagueID), func(ctx context.Context) ([]team.Team, error) {
		fetched, err := f.next.FetchTeams(ctx, leagueID, locator)
		if err != nil {
			return nil, err
		}
		return team.CloneList(fetched), nil
	})
	if err != nil {
		return nil, err
	}
	return team.CloneList(items), nil
}

// Refresh bypasses the cache and stores the fresh roster on success.
func (f *TeamFeed) Refresh(ctx context.Context, leagueID string, locator league.FeedLocator) ([]team.Team, error) {
	items, err := f.next.FetchTeams(ctx, leagueID, locator)
	if err != nil {
		return nil, err
	}
	f.cache.Set(ctx, teamFeedKey(leagueID), team.CloneList(items))
	return team.CloneList(items), nil
}

// ByteStore is the remote cache contract served by platform/cache.RedisStore.
type ByteStore interface {
	GetBytes(ctx context.Context, key string) ([]byte, bool, error)
	SetBytes(ctx context.Context, key string, value []byte) error
}

// RedisTeamFeed shares league rosters between replicas. Cache errors are
// logged and never fail a fetch.
type RedisTeamFeed struct {
	next   team.Feed
	store  ByteStore
	logger *logging.Logger
}

func NewRedisTeamFeed(next team.Feed, store ByteStore, logger *logging.Logger) *RedisTeamFeed {
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisTeamFeed{next: next, store: store, logger: logger}
}

func (f *RedisTeamFeed) FetchTeams(ctx context.Context, leagueID string, locator league.FeedLocator) ([]team.Team, error) {
	key := teamFeedKey(leagueID)
	raw, ok, err := f.store.GetBytes(ctx, key)
	if err != nil {
		f.logger.WarnContext(ctx, "team feed cache read failed", "league_id", leagueID, "error", err)
	}
	if ok {
		items, decodeErr := decodeTeams(raw)
		if decodeErr == nil {
			return items, nil
		}
		f.logger.WarnContext(ctx, "team feed cache entry is corrupt", "league_id", leagueID, "error", decodeErr)
	}

	return f.Refresh(ctx, leagueID, locator)
}

func (f *RedisTeamFeed) Refresh(ctx context.Context, leagueID string, locator league.FeedLocator) ([]team.Team, error) {
	items, err := f.next.FetchTeams(ctx, leagueID, locator)
	if err != nil {
		return nil, err
	}

	raw, err := encodeTeams(items)
	if err != nil {
		f.logger.WarnContext(ctx, "team feed cache encode failed", "league_id", leagueID, "error", err)
		return items, nil
	}
	if err := f.store.SetBytes(ctx, teamFeedKey(leagueID), raw); err != nil {
		f.logger.WarnContext(ctx, "team feed cache write failed", "league_id", leagueID, "error", err)
	}
	return items, nil
}
