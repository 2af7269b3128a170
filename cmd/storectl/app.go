package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/qmc/portal/internal/pkg/kvstore"
	"github.com/qmc/portal/internal/seed"
)

func newApp(open envOpener, out io.Writer) *cli.App {
	// withEnv opens the store around one command
	withEnv := func(action func(c *cli.Context, e *env) error) cli.ActionFunc {
		return func(c *cli.Context) error {
			e, err := open(c.Context, c.String("config"))
			if err != nil {
				return err
			}
			defer e.close(c.Context)
			return action(c, e)
		}
	}

	return &cli.App{
		Name:      "storectl",
		Usage:     "inspect and edit the portal document store",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "configs/config.yaml",
				EnvVars: []string{"CONFIG_PATH"},
				Usage:   "path to the YAML configuration",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "keys",
				Usage: "list stored document keys",
				Action: withEnv(func(c *cli.Context, e *env) error {
					keys, err := e.repos.Documents.Keys(c.Context)
					if err != nil {
						return err
					}
					for _, k := range keys {
						fmt.Fprintln(out, k)
					}
					return nil
				}),
			},
			{
				Name:      "get",
				Usage:     "print one document as indented JSON",
				ArgsUsage: "KEY",
				Action: withEnv(func(c *cli.Context, e *env) error {
					key, err := keyArg(c)
					if err != nil {
						return err
					}
					var raw json.RawMessage
					if err := e.repos.Documents.Load(c.Context, key, &raw); err != nil {
						return err
					}
					var pretty bytes.Buffer
					if err := json.Indent(&pretty, raw, "", "  "); err != nil {
						return err
					}
					fmt.Fprintln(out, pretty.String())
					return nil
				}),
			},
			{
				Name:      "set",
				Usage:     "overwrite one document with JSON from an argument or stdin",
				ArgsUsage: "KEY [JSON|-]",
				Action: withEnv(func(c *cli.Context, e *env) error {
					key, err := keyArg(c)
					if err != nil {
						return err
					}
					value := []byte(c.Args().Get(1))
					if len(value) == 0 || c.Args().Get(1) == "-" {
						if value, err = io.ReadAll(c.App.Reader); err != nil {
							return err
						}
					}
					if !json.Valid(value) {
						return errors.New("value is not valid JSON")
					}
					return e.repos.Documents.Save(c.Context, key, json.RawMessage(value))
				}),
			},
			{
				Name:      "rm",
				Usage:     "remove one document",
				ArgsUsage: "KEY",
				Action: withEnv(func(c *cli.Context, e *env) error {
					key, err := keyArg(c)
					if err != nil {
						return err
					}
					return e.repos.Documents.Delete(c.Context, key)
				}),
			},
			{
				Name:  "seed",
				Usage: "write the default documents that are missing",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "staff", Usage: "also seed the staff roster"},
				},
				Action: withEnv(func(c *cli.Context, e *env) error {
					return seed.CreateDefaultData(c.Context, e.repos, seed.Options{Staff: c.Bool("staff")}, e.logger)
				}),
			},
			{
				Name:  "clear-logs",
				Usage: "delete the audit trail",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "confirm the deletion"},
				},
				Action: withEnv(func(c *cli.Context, e *env) error {
					if !c.Bool("yes") {
						return errors.New("refusing to clear the audit log without --yes")
					}
					return e.audit.Clear(c.Context)
				}),
			},
		},
	}
}

func keyArg(c *cli.Context) (string, error) {
	key := c.Args().First()
	if err := kvstore.ValidateKey(key); err != nil {
		return "", err
	}
	return key, nil
}
