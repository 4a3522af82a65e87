package cmd

import sqlinsert "github.com/Infisical/sql-insert-parser"

type Options struct {
	Strict   bool   `short:"s" long:"strict" description:"reject trailing content, empty column names and invalid identifiers"`
	Unescape bool   `short:"u" long:"unescape" description:"normalize escaped quotes inside quoted values"`
	Output   string `short:"o" long:"output" description:"output format" choice:"text" choice:"json" choice:"yaml" default:"text"`
	LogLevel string `short:"l" long:"log-level" description:"log level" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"error"`
	Version  bool   `short:"v" long:"version" description:"print version"`
	Args     struct {
		Statement []string `positional-arg-name:"statement" description:"INSERT statement, quoted as one argument or split into words"`
	} `positional-args:"yes"`
}

func (o *Options) ParseOptions() sqlinsert.Options {
	return sqlinsert.Options{
		Strict:   o.Strict,
		Unescape: o.Unescape,
	}
}
