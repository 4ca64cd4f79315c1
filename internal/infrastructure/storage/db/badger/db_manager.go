package dbbadger

import (
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	"github.com/timshannon/badgerhold/v4"

	"github.com/nocknetwork/nockd/internal/core/domain"
	"github.com/nocknetwork/nockd/internal/core/ports"
)

// RepoManager holds all the badgerhold stores in a single data structure.
type RepoManager struct {
	vaultStore *badgerhold.Store
	noteStore  *badgerhold.Store
	txStore    *badgerhold.Store

	vaultRepository domain.VaultRepository
	noteRepository  domain.NoteRepository
	txRepository    domain.TransactionRepository
	syncRepository  domain.SyncRepository
}

// NewRepoManager opens (or creates if not exists) the badger stores on disk.
// It expects a base data dir and an optional logger. Vault, notes and
// transactions each get a dedicated directory.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	vaultDb, err := createDb(filepath.Join(baseDbDir, "vault"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening vault db: %w", err)
	}

	noteDb, err := createDb(filepath.Join(baseDbDir, "notes"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening notes db: %w", err)
	}

	txDb, err := createDb(filepath.Join(baseDbDir, "transactions"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening transactions db: %w", err)
	}

	return &RepoManager{
		vaultStore:      vaultDb,
		noteStore:       noteDb,
		txStore:         txDb,
		vaultRepository: NewVaultRepositoryImpl(vaultDb),
		noteRepository:  NewNoteRepositoryImpl(noteDb),
		txRepository:    NewTransactionRepositoryImpl(txDb),
		syncRepository:  NewSyncRepositoryImpl(noteDb),
	}, nil
}

func (d *RepoManager) VaultRepository() domain.VaultRepository {
	return d.vaultRepository
}

func (d *RepoManager) NoteRepository() domain.NoteRepository {
	return d.noteRepository
}

func (d *RepoManager) TransactionRepository() domain.TransactionRepository {
	return d.txRepository
}

func (d *RepoManager) SyncRepository() domain.SyncRepository {
	return d.syncRepository
}

func (d *RepoManager) Close() {
	d.vaultStore.Close()
	d.noteStore.Close()
	d.txStore.Close()
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger
	opts.Compression = options.ZSTD

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
