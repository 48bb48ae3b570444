// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

/*
bio-mod-summary merges a base-modification GFF into an alignment-summary
GFF, annotating every coverage region with counts of the modification
events (by strand and event type) that fall inside it.
*/

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/basemod/modsummary"
)

var (
	region       = flag.String("region", modsummary.DefaultOpts.Region, "Restrict modification counting to the specified region. Format as <contig ID>:<1-based first pos>-<last pos>, <contig ID>:<1-based pos>, or just <contig ID>")
	refIndexPath = flag.String("reference-index", modsummary.DefaultOpts.RefIndexPath, "Optional FASTA .fai path; region records are checked against the reference lengths")
	source       = flag.String("source", modsummary.DefaultOpts.Source, "Value of the injected ##source metadata line")
	versionFlag  = flag.Bool("version", false, "Print the version and exit")
)

func bioModSummaryUsage() {
	fmt.Printf("Usage: %s [OPTIONS] modspath summarypath outpath\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = bioModSummaryUsage
	shutdown := grail.Init()
	defer shutdown()

	if *versionFlag {
		fmt.Println("bio-mod-summary " + modsummary.Version)
		return
	}
	allArgs := flag.Args()
	nPositionalArgs := flag.NArg()
	positionalArgs := allArgs[len(allArgs)-nPositionalArgs:]
	if nPositionalArgs != 3 {
		if nPositionalArgs < 3 {
			log.Fatalf("Missing positional arguments (modspath, summarypath and outpath required); please check flag syntax: '%s'", strings.Join(positionalArgs, " "))
		} else {
			log.Fatalf("Too many positional arguments (only modspath, summarypath and outpath expected); please check flag syntax: '%s'", strings.Join(positionalArgs, " "))
		}
	}
	ctx := vcontext.Background()
	opts := modsummary.Opts{
		Source:       *source,
		CommandLine:  strings.Join(os.Args, " "),
		Region:       *region,
		RefIndexPath: *refIndexPath,
	}
	summary, err := modsummary.Summarize(ctx, positionalArgs[0], positionalArgs[1], positionalArgs[2], opts)
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("annotated %d regions with %d modification calls (%d sequence headers)",
		summary.Regions, summary.Hits, len(summary.SeqMap))
}
