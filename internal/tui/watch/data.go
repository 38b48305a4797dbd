package watch

import (
	"fmt"
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/marcus/wsmark/internal/highlight"
)

// DefaultCacheSize bounds the number of documents kept in memory
const DefaultCacheSize = 64

// Document is one file's content as of ModTime
type Document struct {
	Path    string
	ModTime time.Time
	Size    int64
	Lines   []string
}

// DocCache keeps recently viewed documents keyed by path. A cached entry is
// reused while the file's mtime and size are unchanged.
type DocCache struct {
	cache *lru.Cache[string, *Document]
}

// NewDocCache creates a cache holding at most size documents
func NewDocCache(size int) (*DocCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, *Document](size)
	if err != nil {
		return nil, fmt.Errorf("create document cache: %w", err)
	}
	return &DocCache{cache: c}, nil
}

// Load returns the document at path, reading it only if it changed on disk.
// changed is true when a previously cached document was re-read.
func (c *DocCache) Load(path string) (doc *Document, changed bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		c.cache.Remove(path)
		return nil, false, err
	}

	prev, cached := c.cache.Get(path)
	if cached && prev.ModTime.Equal(info.ModTime()) && prev.Size == info.Size() {
		return prev, false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	doc = &Document{
		Path:    path,
		ModTime: info.ModTime(),
		Size:    info.Size(),
		Lines:   highlight.SplitLines(string(data)),
	}
	c.cache.Add(path, doc)
	return doc, cached, nil
}

// Purge drops every cached document
func (c *DocCache) Purge() {
	c.cache.Purge()
}

// Len returns the number of cached documents
func (c *DocCache) Len() int {
	return c.cache.Len()
}

// File is one file being watched
type File struct {
	ID   string // workspace file id
	Path string // filesystem path
}

// DocsMsg carries the result of re-reading the watched files
type DocsMsg struct {
	Docs    map[string]*Document // by file id
	Changed []string             // file ids re-read since the last load
	Errs    map[string]error
}

// LoadDocs reads every file through the cache
func LoadDocs(cache *DocCache, files []File) DocsMsg {
	msg := DocsMsg{Docs: make(map[string]*Document, len(files))}
	for _, f := range files {
		doc, changed, err := cache.Load(f.Path)
		if err != nil {
			if msg.Errs == nil {
				msg.Errs = make(map[string]error)
			}
			msg.Errs[f.ID] = err
			continue
		}
		msg.Docs[f.ID] = doc
		if changed {
			msg.Changed = append(msg.Changed, f.ID)
		}
	}
	return msg
}
