// Command adeptkey recovers the Adobe ADEPT user key from the local
// Digital Editions activation and writes it to a key file usable by
// DRM removal tools.
package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/limpdev/adeptkey"
)

var (
	flagOut   = flag.String("out", "adeptkey.der", "Write the recovered key to this file")
	flagQuiet = flag.Bool("q", false, "Only report errors")
)

func main() {
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if *flagQuiet {
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}

	key, err := adeptkey.Retrieve()
	if err != nil {
		log.Fatal().Err(err).Msg("key recovery failed")
	}

	if err := os.WriteFile(*flagOut, key, 0600); err != nil {
		log.Fatal().Err(err).Msg("could not write key file")
	}

	log.Info().Str("path", *flagOut).Int("bytes", len(key)).Msg("recovered user key")
}
