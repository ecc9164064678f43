package main

import (
	"flag"
	"log"
	"os"

	"eegview/drivers"
)

const (
	defaultIn  = "logs/RAWLOG.txt"
	defaultOut = "logs/RAWLOG_filtered.txt"
)

// rawfilter copies the well-formed records of a raw log into a new file, so a capture can be replayed without the
// line noise a serial link picks up.
func main() {
	in := flag.String("in", defaultIn, "raw log to read")
	out := flag.String("out", defaultOut, "where to write the filtered log")
	flag.Parse()

	inFile, err := os.Open(*in)
	if err != nil {
		log.Fatal(err)
	}
	defer inFile.Close()

	outFile, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer outFile.Close()

	counts, err := drivers.FilterRecords(inFile, outFile)
	if err != nil {
		log.Fatal(err)
	}

	// Flush to disk
	if err = outFile.Sync(); err != nil {
		log.Fatal(err)
	}
	log.Printf("kept %d of %d lines from %s in %s", counts.Kept, counts.Read, *in, *out)
}
