package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Client wraps the Redis connection.
type Client struct {
	rdb *goredis.Client
}

// NewClient connects to Redis with retry.
func NewClient(addr string) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	for i := 0; i < 20; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(ctx).Err(); err == nil {
			cancel()
			log.Println("Connected to Redis")
			return &Client{rdb: rdb}, nil
		}
		cancel()
		log.Printf("Waiting for Redis... (%d/20)", i+1)
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("redis: failed to connect after 20 attempts")
}

// SetMoverLocation stores a mover's live position in a Redis GEO set.
func (c *Client) SetMoverLocation(ctx context.Context, moverID string, lat, lng float64) error {
	return c.rdb.GeoAdd(ctx, "mover:locations", &goredis.GeoLocation{
		Name:      moverID,
		Longitude: lng,
		Latitude:  lat,
	}).Err()
}

// GetMoverLocation returns the mover's last indexed position.
// Returns ok=false when the mover has never reported a position.
func (c *Client) GetMoverLocation(ctx context.Context, moverID string) (lat, lng float64, ok bool, err error) {
	res, err := c.rdb.GeoPos(ctx, "mover:locations", moverID).Result()
	if err != nil {
		return 0, 0, false, err
	}
	if len(res) == 0 || res[0] == nil {
		return 0, 0, false, nil
	}
	return res[0].Latitude, res[0].Longitude, true, nil
}

// RemoveMoverLocation removes a mover from the GEO set (e.g. when their leg ends).
func (c *Client) RemoveMoverLocation(ctx context.Context, moverID string) error {
	return c.rdb.ZRem(ctx, "mover:locations", moverID).Err()
}

// CacheTrip stores a trip snapshot in a hash with TTL.
func (c *Client) CacheTrip(ctx context.Context, tripID string, data map[string]string) error {
	key := "trip:" + tripID
	pipe := c.rdb.Pipeline()
	pipe.HSet(ctx, key, data)
	pipe.Expire(ctx, key, 24*time.Hour)
	_, err := pipe.Exec(ctx)
	return err
}

// GetCachedTrip retrieves a cached trip hash.
func (c *Client) GetCachedTrip(ctx context.Context, tripID string) (map[string]string, error) {
	return c.rdb.HGetAll(ctx, "trip:"+tripID).Result()
}

// Close tears down the Redis connection.
func (c *Client) Close() error { return c.rdb.Close() }
