package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"readaloud/internal/domain/resource"
)

// Cache wraps the platform client with a local JSON file cache so the
// reader works offline and avoids hammering the API on every run.
type Cache struct {
	client    *Client
	cacheDir  string
	cacheFile string
	maxAge    time.Duration
}

type cachedCollection struct {
	Collection  resource.Collection `json:"collection"`
	LastUpdated time.Time           `json:"last_updated"`
	Total       int                 `json:"total"`
}

func NewCache(client *Client, cacheDir string, maxAge time.Duration) *Cache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		logrus.WithError(err).Warn("Failed to create cache directory")
	}

	return &Cache{
		client:    client,
		cacheDir:  cacheDir,
		cacheFile: filepath.Join(cacheDir, "resources_cache.json"),
		maxAge:    maxAge,
	}
}

// GetCollection returns the resource collection, from cache when fresh,
// refetching from the API otherwise. A failed fetch falls back to a stale
// cache before giving up.
func (c *Cache) GetCollection() (*resource.Collection, error) {
	if c.isCacheFresh() {
		logrus.Info("Loading resources from cache")
		return c.loadFromCache()
	}

	logrus.Info("Fetching fresh resources from API")
	collection, err := c.fetchFromAPI()
	if err != nil {
		logrus.WithError(err).Warn("API fetch failed, trying stale cache")
		if cached, cacheErr := c.loadFromCache(); cacheErr == nil {
			return cached, nil
		}
		return nil, fmt.Errorf("failed to fetch from API and no cache available: %w", err)
	}

	if err := c.saveToCache(collection); err != nil {
		logrus.WithError(err).Warn("Failed to save to cache")
	}

	return collection, nil
}

func (c *Cache) isCacheFresh() bool {
	info, err := os.Stat(c.cacheFile)
	if err != nil {
		return false
	}

	return time.Since(info.ModTime()) < c.maxAge
}

func (c *Cache) loadFromCache() (*resource.Collection, error) {
	file, err := os.Open(c.cacheFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	var cached cachedCollection
	if err := json.NewDecoder(file).Decode(&cached); err != nil {
		return nil, fmt.Errorf("failed to decode cache file: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"resources":    len(cached.Collection.Resources),
		"last_updated": cached.LastUpdated.Format(time.RFC3339),
	}).Info("Loaded resources from cache")

	return &cached.Collection, nil
}

func (c *Cache) saveToCache(collection *resource.Collection) error {
	cached := cachedCollection{
		Collection:  *collection,
		LastUpdated: time.Now(),
		Total:       len(collection.Resources),
	}

	file, err := os.Create(c.cacheFile)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cached); err != nil {
		return fmt.Errorf("failed to encode cache data: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"resources": len(collection.Resources),
		"file":      c.cacheFile,
	}).Info("Saved resources to cache")

	return nil
}

func (c *Cache) fetchFromAPI() (*resource.Collection, error) {
	items, err := c.client.ListResources()
	if err != nil {
		return nil, err
	}

	return &resource.Collection{
		Name:      "Learning Platform Resources",
		URL:       c.client.baseURL,
		Resources: items,
	}, nil
}

// ClearCache removes the cache file.
func (c *Cache) ClearCache() error {
	if err := os.Remove(c.cacheFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	logrus.Info("Cleared resource cache")
	return nil
}

// CacheInfo returns information about the cache file.
func (c *Cache) CacheInfo() map[string]interface{} {
	info := make(map[string]interface{})

	if stat, err := os.Stat(c.cacheFile); err == nil {
		info["exists"] = true
		info["file"] = c.cacheFile
		info["size"] = stat.Size()
		info["last_modified"] = stat.ModTime()
		info["is_fresh"] = c.isCacheFresh()
		info["max_age_hours"] = c.maxAge.Hours()
	} else {
		info["exists"] = false
	}

	return info
}
