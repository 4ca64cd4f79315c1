package ports

import "github.com/nocknetwork/nockd/internal/core/domain"

// RepoManager gives access to all the repositories of a storage backend and
// owns their shared resources.
type RepoManager interface {
	VaultRepository() domain.VaultRepository
	NoteRepository() domain.NoteRepository
	TransactionRepository() domain.TransactionRepository
	SyncRepository() domain.SyncRepository
	Close()
}
