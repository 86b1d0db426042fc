package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mrlokans/fintracker/internal/auth"
	"github.com/mrlokans/fintracker/internal/config"
	"github.com/mrlokans/fintracker/internal/database"
	"github.com/mrlokans/fintracker/internal/database/accounts"
)

// CreateAccountCommand registers an account without going through the web form.
type CreateAccountCommand struct {
	Username string
	Name     string
	Email    string
	Password string
	Database config.Database
	Out      io.Writer
}

func NewCreateAccountCommand(dbCfg config.Database) *CreateAccountCommand {
	return &CreateAccountCommand{Database: dbCfg, Out: os.Stdout}
}

func (cmd *CreateAccountCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-account", flag.ExitOnError)

	fs.StringVar(&cmd.Username, "username", "", "Login name (required)")
	fs.StringVar(&cmd.Name, "name", "", "Display name")
	fs.StringVar(&cmd.Email, "email", "", "Email address (required)")
	fs.StringVar(&cmd.Password, "password", "", "Password (required)")
	fs.StringVar(&cmd.Database.Path, "db", cmd.Database.Path, "Path to the SQLite database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-account [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create an account in the tracker database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s create-account -username alice -email alice@example.com -password secret\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Username == "" || cmd.Email == "" || cmd.Password == "" {
		fs.Usage()
		return fmt.Errorf("username, email and password are required")
	}
	if cmd.Name == "" {
		cmd.Name = cmd.Username
	}

	return nil
}

func (cmd *CreateAccountCommand) Run() error {
	db, err := database.NewQuietDatabase(cmd.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	service := auth.NewService(accounts.NewRepository(db.DB))
	account, err := service.Register(context.Background(), auth.RegistrationInput{
		Username: cmd.Username,
		Name:     cmd.Name,
		Email:    cmd.Email,
		Password: cmd.Password,
	})
	if errors.Is(err, auth.ErrAlreadyRegistered) {
		return fmt.Errorf("%s: %w", cmd.Username, err)
	}
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	fmt.Fprintf(cmd.Out, "%s (id %d, %s)\n", auth.MsgRegistered, account.ID, account.Username)
	return nil
}
