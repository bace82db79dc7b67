package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const notProvided = "<NOT PROVIDED>"

type debugField struct {
	name  string
	value string
}

// printDebug prints the resolved invocation for --debug.
func printDebug(cmd *cobra.Command, a *app, extra []debugField) error {
	conn := connectionConfig(a.config)
	password := notProvided
	if conn.Password != "" {
		password = "<PROVIDED>"
	}

	fields := []debugField{
		{"command", cmd.CommandPath()},
		{"config dir", a.configDir},
		{"data dir", a.dataDir},
		{"db uri", orNotProvided(conn.DBURI)},
		{"neo4j user", orNotProvided(conn.User)},
		{"neo4j password", password},
		{"neo4j db", orNotProvided(conn.Database)},
		{"log level", a.config.GetString(cfgKeyLogLevel)},
	}
	fields = append(fields, extra...)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "DEBUG INFO")
	fmt.Fprintln(out)
	for _, f := range fields {
		fmt.Fprintf(out, "%-20s%s\n", f.name+":", f.value)
	}
	return nil
}

func orNotProvided(s string) string {
	if s == "" {
		return notProvided
	}
	return s
}
