package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/mkuznecov/nutritrack/internal/client/auth"
	"github.com/mkuznecov/nutritrack/internal/client/localstore"
	"github.com/mkuznecov/nutritrack/internal/client/repositories/metadata"
	"github.com/mkuznecov/nutritrack/internal/client/services"
	"github.com/mkuznecov/nutritrack/internal/client/sheets"
	"github.com/mkuznecov/nutritrack/internal/common"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

// Login connects the app to the spreadsheet backend and starts a session.
//
// Token resolution order:
//  1. A configured service-account key file, exchanged for an access token.
//  2. A previously cached token, decrypted with a passphrase.
//  3. A token pasted by the user (read without echo), with an offer to
//     cache it for next time.
//
// After authenticating, the backing spreadsheet is located on Drive (or
// provisioned on first run) and the stored collections are loaded.
func (a *App) Login(ctx context.Context) error {
	token, err := a.resolveToken(ctx)
	if err != nil {
		fmt.Println("Login failed:", err)
		return err
	}

	client := sheets.NewClient(token, &http.Client{Timeout: a.config.RequestTimeout})
	service := sheets.NewService(client, a.config.SpreadsheetTitle, a.log)

	created, err := service.Init(ctx)
	if err != nil {
		fmt.Println("Could not reach the spreadsheet backend:", err)
		return err
	}
	if created {
		fmt.Printf("Created spreadsheet %q on your Drive.\n", a.config.SpreadsheetTitle)
	}

	session := services.NewSession(service, a.clock, a.log)
	if err := session.Start(ctx); err != nil {
		fmt.Println("Could not load your data:", err)
		return err
	}

	a.session = session
	a.Mode = ModeOnline
	a.username = "me"
	if p := session.Profile(); p != nil {
		a.username = p.Name
	}

	if session.NeedsOnboarding() {
		fmt.Println("No profile found yet. Run 'setup' to get started.")
	} else {
		fmt.Printf("Welcome back, %s!\n", a.username)
	}
	return nil
}

func (a *App) resolveToken(ctx context.Context) (string, error) {
	if a.config.ServiceAccountFile != "" {
		provider, err := auth.LoadServiceAccount(a.config.ServiceAccountFile, nil)
		if err != nil {
			return "", err
		}
		return provider.Token(ctx)
	}

	cache := auth.NewTokenCache(metadata.NewSQLiteRepository(a.db))

	use, err := getSimpleText(a.reader, "Use a cached session token? (y/N)", os.Stdout)
	if err != nil {
		return "", err
	}
	if use == "y" || use == "Y" {
		passphrase, err := getSecret("Enter passphrase", os.Stdout)
		if err != nil {
			return "", err
		}
		defer common.WipeByteArray(passphrase)

		token, err := cache.Load(ctx, passphrase)
		if err == nil {
			return token, nil
		}
		if errors.Is(err, common.ErrNoStoredSession) {
			fmt.Println("No cached token found.")
		} else if errors.Is(err, common.ErrorUnauthorized) {
			fmt.Println("Wrong passphrase.")
		} else {
			fmt.Println("Could not load cached token:", err)
		}
	}

	tokenBytes, err := getSecret("Paste access token", os.Stdout)
	if err != nil {
		return "", err
	}
	token := string(tokenBytes)
	common.WipeByteArray(tokenBytes)
	if token == "" {
		return "", common.ErrInvalidToken
	}

	save, err := getSimpleText(a.reader, "Cache this token for next time? (y/N)", os.Stdout)
	if err == nil && (save == "y" || save == "Y") {
		passphrase, err := getSecret("Choose a passphrase", os.Stdout)
		if err == nil {
			if err := cache.Save(ctx, token, passphrase); err != nil {
				fmt.Println("Could not cache token:", err)
			}
			common.WipeByteArray(passphrase)
		}
	}
	return token, nil
}

// Local starts a session against the local SQLite store, no backend needed.
// The user picks one of the locally stored profiles, or names a new one.
func (a *App) Local(ctx context.Context) error {
	known, err := localstore.ListProfiles(ctx, a.db)
	if err != nil {
		fmt.Println("Could not list local profiles:", err)
		return err
	}
	def, _ := localstore.LastUser(ctx, a.db)
	if def == "" && len(known) > 0 {
		def = known[0].Name
	}

	if len(known) > 0 {
		fmt.Println("Local profiles:")
		for _, p := range known {
			fmt.Printf("  - %s\n", p.Name)
		}
	}
	prompt := "Profile name"
	if def != "" {
		prompt = fmt.Sprintf("Profile name [%s]", def)
	}
	name, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		name = def
	}
	if name == "" {
		fmt.Println("A profile name is required.")
		return common.ErrorNotFound
	}

	session := services.NewSession(localstore.New(a.db, name), a.clock, a.log)
	if err := session.Start(ctx); err != nil {
		fmt.Println("Could not load local data:", err)
		return err
	}

	a.session = session
	a.Mode = ModeLocal
	a.username = name

	if session.NeedsOnboarding() {
		fmt.Println("No profile found yet. Run 'setup' to get started.")
	}
	return nil
}

// Logout discards the in-memory session. A cached token stays on disk,
// encrypted; it can only be reused with the passphrase.
func (a *App) Logout(ctx context.Context) error {
	a.session = nil
	a.username = ""
	a.Mode = ""
	fmt.Println("Logged out.")
	return nil
}
