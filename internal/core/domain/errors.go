package domain

import "errors"

var (
	// ErrVaultMustBeUnlocked is thrown when trying to make an operation that requires the vault to be unlocked
	ErrVaultMustBeUnlocked = errors.New("vault must be unlocked to perform this operation")
	// ErrVaultNotInitialized is thrown when no vault exists yet, the caller should route to the creation flow
	ErrVaultNotInitialized = errors.New("vault is not initialized")
	// ErrVaultAlreadyInitialized ...
	ErrVaultAlreadyInitialized = errors.New("vault is already initialized")
	// ErrInvalidPassphrase is thrown on decryption failure, the caller should route to the retry flow
	ErrInvalidPassphrase = errors.New("passphrase is not valid")
	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("mnemonic is invalid")
	// ErrNullMnemonicOrPassphrase ...
	ErrNullMnemonicOrPassphrase = errors.New("mnemonic and/or passphrase must not be null")
	// ErrInvalidAccountIndex ...
	ErrInvalidAccountIndex = errors.New("account not found with the given index")
	// ErrInvalidAccountName ...
	ErrInvalidAccountName = errors.New("account name must not be empty")
	// ErrCannotHideLastAccount is thrown when hiding an account would leave none visible
	ErrCannotHideLastAccount = errors.New("at least one visible account must remain")
	// ErrAccountAlreadyHidden ...
	ErrAccountAlreadyHidden = errors.New("account is already hidden")

	// ErrInsufficientFunds ...
	ErrInsufficientFunds = errors.New("available notes do not cover the target amount")
	// ErrNoteAlreadyLocked is thrown when reserving a note that is in-flight under another transaction
	ErrNoteAlreadyLocked = errors.New("note is already locked by another transaction")
	// ErrNoteAlreadySpent ...
	ErrNoteAlreadySpent = errors.New("note is already spent")
	// ErrNoteNotFound ...
	ErrNoteNotFound = errors.New("note not found with the given key")

	// ErrKeysUnavailable ...
	ErrKeysUnavailable = errors.New("no private key available for the account")
	// ErrBroadcastFailed ...
	ErrBroadcastFailed = errors.New("transaction could not be broadcast")
	// ErrNoteMismatch is thrown when the chain source returns fewer fresh notes
	// than were reserved, the send likely raced with another spend
	ErrNoteMismatch = errors.New("reserved notes could not all be refreshed from chain")
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("recipient address is malformed")
	// ErrInvalidAmount ...
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrTxNotFound ...
	ErrTxNotFound = errors.New("transaction not found with the given id")
	// ErrInvalidStatusTransition ...
	ErrInvalidStatusTransition = errors.New("transaction status can only move forward")
)
