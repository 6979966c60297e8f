package user

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/askele/borealis/internal/config"
	"github.com/askele/borealis/internal/sqlitedb"
	"github.com/askele/borealis/passhash"
	"github.com/askele/borealis/userstore"
	"github.com/askele/borealis/webapp"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage registered users from the terminal",
		Subcommands: []*cli.Command{
			addCmd(),
		},
	}
}

func addCmd() *cli.Command {
	var dataDir string
	var username string
	var email string
	return &cli.Command{
		Name:  "add",
		Usage: "Register a new user (password is read from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "data",
				Aliases:     []string{"d"},
				Usage:       "Directory holding the sqlite database (overrides BOREALIS_DATA)",
				Destination: &dataDir,
			},
			&cli.StringFlag{
				Name:        "username",
				Aliases:     []string{"u"},
				Usage:       "Name of the user to register",
				Destination: &username,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "email",
				Aliases:     []string{"e"},
				Usage:       "Email of the user to register",
				Destination: &email,
				Required:    true,
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dataDir != "" {
				cfg.DataDir = dataDir
			}
			sc := bufio.NewScanner(os.Stdin)
			if !sc.Scan() {
				return sc.Err()
			}
			password := strings.TrimSpace(sc.Text())
			if len(password) == 0 {
				return errors.New("missing password from stdin")
			}
			db, err := sqlitedb.Open(ctx.Context, cfg.DataDir, "borealis.db")
			if err != nil {
				return err
			}
			defer db.Close()
			users, err := userstore.New(ctx.Context, db)
			if err != nil {
				return err
			}
			digest, err := passhash.Hash(password)
			if err != nil {
				return err
			}
			_, err = users.Insert(ctx.Context, username, email, digest, webapp.DefaultProfileImage)
			return err
		},
	}
}
