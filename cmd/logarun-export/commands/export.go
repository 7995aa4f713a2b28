package commands

import (
	"fmt"
	"log/slog"
	"logarun-export/lib/configutil"
	"logarun-export/lib/export"
	"logarun-export/lib/restyutil"
	"logarun-export/lib/scrapers/logarun"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// Config holds credentials read from config.json5 when flags and the
// environment don't provide them.
type Config struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

var (
	username  *string
	password  *string
	output    *string
	baseUrl   *string
	delay     *time.Duration
	debugHttp *string
)

func init() {
	username = rootCmd.Flags().StringP("username", "u", "", "Logarun username. Defaults to config.json5, then $LOGARUN_USERNAME.")
	password = rootCmd.Flags().StringP("password", "p", "", "Logarun password. Defaults to config.json5, then $LOGARUN_PASSWORD.")
	output = rootCmd.Flags().StringP("output", "o", "", "Write the export to this file. Defaults to logarun_export_<start>_<end>.json.")
	baseUrl = rootCmd.Flags().String("base-url", logarun.DefaultBaseUrl, "Base url of the logarun site.")
	delay = rootCmd.Flags().Duration("delay", time.Second, "Pause between day requests.")
	debugHttp = rootCmd.Flags().String("debug-http", "", "Dump raw http messages to this directory (requires --verbose).")
}

func resolveCredentials(flagUser, flagPass string) (string, string, error) {
	user, pass := flagUser, flagPass

	if user == "" || pass == "" {
		cfg, err := configutil.ReadConfig[Config]("config.json5")
		if err != nil && !os.IsNotExist(err) {
			return "", "", err
		}
		if user == "" {
			user = cfg.Username
		}
		if pass == "" {
			pass = cfg.Password
		}
	}
	if user == "" {
		user = os.Getenv("LOGARUN_USERNAME")
	}
	if pass == "" {
		pass = os.Getenv("LOGARUN_PASSWORD")
	}

	if user == "" || pass == "" {
		return "", "", fmt.Errorf(
			"missing logarun credentials: pass --username/--password, create a config.json5 or set LOGARUN_USERNAME/LOGARUN_PASSWORD",
		)
	}
	return user, pass, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	endArg := time.Now().Format(export.DateFormat)
	if len(args) == 2 {
		endArg = args[1]
	}
	dateRange, err := export.ParseDateRange(args[0], endArg)
	if err != nil {
		return err
	}

	user, pass, err := resolveCredentials(*username, *password)
	if err != nil {
		return err
	}

	if *debugHttp != "" {
		logarun.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(*debugHttp))
	}

	client, err := logarun.NewClient(ctx, logarun.ClientOptions{BaseUrl: *baseUrl})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "logging in", "username", user)
	err = client.Login(ctx, user, pass)
	if err != nil {
		return err
	}

	doc, err := export.Run(ctx, client, export.Options{
		Username: user,
		Range:    dateRange,
		Delay:    *delay,
	})
	if err != nil {
		return err
	}

	path := *output
	if path == "" {
		path = export.DefaultFilename(dateRange)
	}
	err = export.WriteFile(path, doc)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "wrote export", "path", path, "days", len(doc))

	printSummary(doc)
	return nil
}

func printSummary(doc export.Document) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Date", "Title", "Activities"})
	for _, day := range doc {
		t.AppendRow(table.Row{day.Date, day.Title, len(day.Activities)})
	}
	t.Render()
}
