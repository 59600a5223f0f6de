package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/pprof"
	"strings"

	"chprep/pkg/contractor"
	"chprep/pkg/geo"
	"chprep/pkg/kv"
	"chprep/pkg/osmparser"
	"chprep/pkg/prepgraph"
	"chprep/pkg/server/rest"

	"github.com/dgraph-io/badger/v4"

	_ "net/http/pprof"
)

var (
	listenAddr = flag.String("listenaddr", ":5000", "server listen address for the debug REST surface")
	mapFile    = flag.String("f", "solo_jogja.osm.pbf", "openstreetmap file for the road network graph")
	dbPath     = flag.String("db", "./chprep.db", "badger directory for the H3-indexed edge store")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile = flag.String("memprofile", "", "write memory profile to this file")
	serve      = flag.Bool("serve", true, "serve the status/locate REST surface while preparation runs and after it finishes")
)

func main() {
	flag.Parse()
	if *cpuprofile != "" {
		// https://go.dev/blog/pprof
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()

		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	log.Printf("reading osm file %s", *mapFile)
	osmParser, err := osmparser.NewOSMParser()
	if err != nil {
		log.Fatalf("opening node coordinate staging store: %v", err)
	}
	defer osmParser.Close()

	nodes, edges, physicalEdges, _, err := osmParser.Parse(*mapFile)
	if err != nil {
		log.Fatalf("parsing %s: %v", *mapFile, err)
	}
	recordMemProfile(memprofile, "parsing_osm_data")

	log.Printf("building preparation graph: %d nodes, %d physical edges", len(nodes), len(physicalEdges))
	graph := prepgraph.NewNodeBased(int32(len(nodes)), int32(len(physicalEdges)))
	for _, pe := range physicalEdges {
		graph.AddEdge(pe.FromNodeID, pe.ToNodeID, pe.EdgeID, pe.WeightFwd, pe.WeightBwd)
	}
	graph.PrepareForContraction()

	ctr := contractor.NewContractor(graph)

	nodeIndex := geo.NewNodeIndex()
	for _, n := range nodes {
		nodeIndex.Insert(n.ID, n.Lat, n.Lon)
	}

	db, err := badger.Open(badger.DefaultOptions(*dbPath))
	if err != nil {
		log.Fatalf("opening badger db at %s: %v", *dbPath, err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kvDB := kv.NewKVDB(db)
	defer kvDB.Close()

	if *serve {
		router := rest.NewRouter(ctr, nodeIndex)
		go func() {
			log.Printf("serving preparation status on %s", *listenAddr)
			if err := http.ListenAndServe(*listenAddr, router); err != nil {
				log.Printf("rest server stopped: %v", err)
			}
		}()
	}

	if err := kvDB.BuildH3IndexedEdges(ctx, edges, nodes); err != nil {
		log.Fatalf("building h3 index: %v", err)
	}

	if err := ctr.Contract(); err != nil {
		log.Fatalf("contraction failed: %v", err)
	}
	recordMemProfile(memprofile, "finish_contracting_graph")

	fmt.Printf("\ncontraction hierarchies preparation ready: %d nodes, %d shortcuts\n",
		ctr.Nodes(), ctr.Metadata.ShortcutsCount)

	if *serve {
		select {}
	}
}

func recordMemProfile(memprofile *string, name string) {
	if *memprofile != "" {
		*memprofile = strings.Replace(*memprofile, ".mprof", fmt.Sprintf("%s.mprof", name), -1)
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
