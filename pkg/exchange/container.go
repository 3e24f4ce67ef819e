package exchange

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Container is a thread-safe registry of adapter instances, letting callers
// address venues by name and fan requests out across them. It also owns
// shutdown: closing the container closes every registered adapter.
type Container struct {
	mu       sync.RWMutex
	adapters map[string]Exchange
}

// NewContainer creates an empty registry.
func NewContainer() *Container {
	return &Container{
		adapters: make(map[string]Exchange),
	}
}

// Register adds an adapter under the given name, replacing any previous one.
func (c *Container) Register(name string, ex Exchange) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.adapters[name] = ex
}

// Get retrieves an adapter by name.
func (c *Container) Get(name string) (Exchange, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ex, exists := c.adapters[name]
	if !exists {
		return nil, fmt.Errorf("exchange %q not registered", name)
	}
	return ex, nil
}

// Names returns the registered adapter names in sorted order.
func (c *Container) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.adapters))
	for name := range c.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unregister removes an adapter by name.
func (c *Container) Unregister(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.adapters, name)
}

// Exists reports whether an adapter is registered under the given name.
func (c *Container) Exists(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.adapters[name]
	return exists
}

// Each visits the registered adapters in name order, stopping at the first
// error. The registry lock is not held during the visits, so fn may issue
// venue calls or mutate the container.
func (c *Container) Each(fn func(name string, ex Exchange) error) error {
	c.mu.RLock()
	snapshot := make(map[string]Exchange, len(c.adapters))
	for name, ex := range c.adapters {
		snapshot[name] = ex
	}
	c.mu.RUnlock()

	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := fn(name, snapshot[name]); err != nil {
			return err
		}
	}
	return nil
}

// Close shuts down every registered adapter and empties the registry. All
// adapters are closed even when some fail; the errors are joined.
func (c *Container) Close() error {
	c.mu.Lock()
	adapters := c.adapters
	c.adapters = make(map[string]Exchange)
	c.mu.Unlock()

	var errs []error
	for name, ex := range adapters {
		if err := ex.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
