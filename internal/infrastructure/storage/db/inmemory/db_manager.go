package inmemory

import (
	"github.com/nocknetwork/nockd/internal/core/domain"
	"github.com/nocknetwork/nockd/internal/core/ports"
)

type RepoManager struct {
	vaultRepository domain.VaultRepository
	noteRepository  domain.NoteRepository
	txRepository    domain.TransactionRepository
	syncRepository  domain.SyncRepository
}

func NewRepoManager() ports.RepoManager {
	return &RepoManager{
		vaultRepository: NewVaultRepositoryImpl(),
		noteRepository:  NewNoteRepositoryImpl(),
		txRepository:    NewTransactionRepositoryImpl(),
		syncRepository:  NewSyncRepositoryImpl(),
	}
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

func (d *RepoManager) Close() {}
