// Package iocache persists cleaned datasets and analysis runs.
package iocache

import (
	"sync"

	"github.com/rmonroe/shotline/internal/contract"
)

// StoreManagerImpl manages the dataset and run store instances.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	dataset      contract.DatasetStore
	runs         contract.RunStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetDatasetStore returns the dataset store.
func (mgr *StoreManagerImpl) GetDatasetStore() contract.DatasetStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.dataset
}

// GetRunStore returns the run store.
func (mgr *StoreManagerImpl) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}
