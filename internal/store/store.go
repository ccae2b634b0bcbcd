package store

import "database/sql"

// Store provides access to all storage repositories.
type Store struct {
	db        *sql.DB
	inventory *InventoryStore
	vm        *VMStore
	scenario  *ScenarioStore
}

func NewStore(db *sql.DB) *Store {
	qi := newQueryInterceptor(db)
	return &Store{
		db:        db,
		inventory: NewInventoryStore(qi),
		vm:        NewVMStore(qi),
		scenario:  NewScenarioStore(qi),
	}
}

func (s *Store) Inventory() *InventoryStore {
	return s.inventory
}

func (s *Store) VM() *VMStore {
	return s.vm
}

func (s *Store) Scenario() *ScenarioStore {
	return s.scenario
}

func (s *Store) Close() error {
	return s.db.Close()
}
