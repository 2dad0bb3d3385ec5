// Package useraccount loads the wallet the CLI signs storage transactions
// with: a geth keystore file kept under the xdg config directory.
package useraccount

import (
	"bufio"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/adrg/xdg"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/term"
)

// WalletPath is the wallet location relative to the xdg config directory.
const WalletPath = "golembase/wallet.json"

// passwordEnvVar bypasses the interactive prompt when set.
const passwordEnvVar = "WALLET_PASSWORD"

// UserAccount is a decrypted signing identity.
type UserAccount struct {
	Address    common.Address
	PrivateKey *ecdsa.PrivateKey
}

// Load reads and decrypts the keystore file at WalletPath. The decryption
// passphrase comes from passwordEnvVar, an interactive prompt, or piped
// stdin, in that order of preference.
func Load() (*UserAccount, error) {
	walletPath, err := xdg.ConfigFile(WalletPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve wallet path: %w", err)
	}

	walletJSON, err := os.ReadFile(walletPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read wallet file: %w", err)
	}

	password, err := readPassword()
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}

	key, err := keystore.DecryptKey(walletJSON, password)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt private key: %w", err)
	}

	return &UserAccount{
		Address:    crypto.PubkeyToAddress(key.PrivateKey.PublicKey),
		PrivateKey: key.PrivateKey,
	}, nil
}

func readPassword() (string, error) {
	if password, ok := os.LookupEnv(passwordEnvVar); ok {
		return password, nil
	}

	if term.IsTerminal(int(syscall.Stdin)) {
		return promptPassword()
	}

	// Piped stdin, e.g. from a password manager.
	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(password), nil
}

// promptPassword asks on the terminal without echoing the input.
func promptPassword() (string, error) {
	fmt.Print("Enter wallet password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(passwordBytes)), nil
}
