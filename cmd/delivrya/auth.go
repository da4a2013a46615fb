package main

import (
	"errors"
	"sort"

	"delivrya/authclient"
	"delivrya/navigation"

	"github.com/urfave/cli/v2"
)

func loginCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in and keep the session token on this device",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"DELIVRYA_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			client, nav, closeStore, err := e.authFlow(navigation.Login)
			if err != nil {
				return err
			}
			defer closeStore()

			res, err := client.Login(c.Context, c.String("email"), c.String("password"))
			if errors.Is(err, authclient.ErrInvalidCredentials) {
				return cli.Exit(e.locale.T("errors.invalidCredentials"), 1)
			}
			if err != nil {
				return err
			}
			if res.Warning != "" {
				e.printf("! %s\n", e.locale.T("errors.tokenNotSaved"))
			}
			e.printf("%s → %s\n", e.locale.T("welcome"), nav.Current().Path)
			return nil
		},
	}
}

func signupCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "signup",
		Usage: "create a client account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "prenom"},
			&cli.StringFlag{Name: "nom"},
			&cli.StringFlag{Name: "email"},
			&cli.StringFlag{Name: "telephone"},
			&cli.StringFlag{Name: "password", EnvVars: []string{"DELIVRYA_PASSWORD"}},
			&cli.StringFlag{Name: "ville"},
			&cli.StringFlag{Name: "adresse"},
		},
		Action: func(c *cli.Context) error {
			client, nav, closeStore, err := e.authFlow(navigation.Signup)
			if err != nil {
				return err
			}
			defer closeStore()

			err = client.Signup(c.Context, authclient.SignupForm{
				Prenom:     c.String("prenom"),
				Nom:        c.String("nom"),
				Email:      c.String("email"),
				Telephone:  c.String("telephone"),
				MotDePasse: c.String("password"),
				Ville:      c.String("ville"),
				Adresse:    c.String("adresse"),
			})

			var fields authclient.FieldErrors
			var dup *authclient.DuplicateEmailError
			switch {
			case errors.As(err, &fields):
				names := make([]string, 0, len(fields))
				for name := range fields {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					e.printf("%s: %s\n", name, fields[name])
				}
				return cli.Exit("", 1)
			case errors.As(err, &dup):
				return cli.Exit("email: "+dup.Message, 1)
			case errors.Is(err, authclient.ErrSignupFailed):
				return cli.Exit(e.locale.T("errors.signupFailed"), 1)
			case err != nil:
				return err
			}
			e.printf("%s → %s\n", e.locale.T("signup"), nav.Current().Path)
			return nil
		},
	}
}

func logoutCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "forget the session token",
		Action: func(c *cli.Context) error {
			client, nav, closeStore, err := e.authFlow(navigation.Profile)
			if err != nil {
				return err
			}
			defer closeStore()
			if err := client.Logout(c.Context); err != nil {
				return err
			}
			e.printf("%s → %s\n", e.locale.T("logout"), nav.Current().Path)
			return nil
		},
	}
}
