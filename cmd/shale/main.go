// shale is the command line tool for shale columnar files: inspect, read,
// write, convert to and from Parquet, and query exports with SQL.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/shaledb/shale"
	"github.com/shaledb/shale/config"
	"github.com/shaledb/shale/internal/colfmt"
	"github.com/shaledb/shale/internal/loader"
	"github.com/shaledb/shale/internal/logging"
	"github.com/shaledb/shale/internal/parquet"
	"github.com/shaledb/shale/internal/query"
)

// Version is set at build time via ldflags
var Version = "dev"

func usage() {
	fmt.Fprintf(os.Stderr, `usage: shale <command> [arguments]

Commands:
  info     show schema, row groups and row count of a file
  read     print one column of a file
  write    write integer values as a single-column file
  import   convert Parquet files to shale files
  export   export one column as a Parquet file
  query    run SQL over Parquet files with DuckDB
  version  print version information
`)
	os.Exit(2)
}

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "info":
		runInfo(args)
	case "read":
		runRead(args)
	case "write":
		runWrite(args)
	case "import":
		runImport(args)
	case "export":
		runExport(args)
	case "query":
		runQuery(args)
	case "version":
		fmt.Printf("shale %s, %s\n", Version, shale.Version())
	default:
		log.Printf("unknown command %q", cmd)
		usage()
	}
}

// loadConfig loads the optional config file and initializes logging.
func loadConfig(path string) *loader.Config {
	cfg, err := loader.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg = loader.DefaultConfig()
		} else {
			log.Fatalf("Load config: %v", err)
		}
	}
	logging.Init(logging.ParseLevel(cfg.Log.Level), cfg.Log.JSON)
	return cfg
}

func runInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatal("usage: shale info <file>")
	}
	path := fs.Arg(0)

	f, err := colfmt.Open(path)
	if err != nil {
		log.Fatalf("Open: %v", err)
	}
	defer f.Close()

	fmt.Printf("file:       %s\n", path)
	fmt.Printf("rows:       %d\n", f.NumRows())
	fmt.Printf("row groups: %d\n", f.NumRowGroups())
	fmt.Println("columns:")
	for _, col := range f.Schema().Columns() {
		fmt.Printf("  %-24s %s\n", col.Name, col.Type)
	}
}

func runRead(args []string) {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	cfgPath := fs.String("config", config.DefaultConfigPath, "config file path")
	column := fs.String("column", "", "column name (required)")
	batch := fs.Int("batch", 0, "decode batch size (0 = config default)")
	limit := fs.Int("limit", 0, "print at most this many values (0 = all)")
	fs.Parse(args)
	if fs.NArg() != 1 || *column == "" {
		log.Fatal("usage: shale read -column <name> [-batch n] [-limit n] <file>")
	}
	path := fs.Arg(0)

	cfg := loadConfig(*cfgPath)
	batchSize := *batch
	if batchSize == 0 {
		batchSize = cfg.Read.BatchSize
	}

	rows, err := shale.GetNumRows(path)
	if err != nil {
		log.Fatalf("GetNumRows: %v", err)
	}
	typ, err := shale.GetColumnType(path, *column)
	if err != nil {
		log.Fatalf("GetColumnType: %v", err)
	}

	dst := make([]int64, rows)
	n, err := shale.ReadColumn(path, *column, dst, batchSize)
	if err != nil {
		log.Fatalf("ReadColumn: %v", err)
	}
	if *limit > 0 && n > *limit {
		n = *limit
	}
	for i := 0; i < n; i++ {
		if typ == shale.Uint64 {
			// The stored bit pattern is the unsigned value.
			fmt.Println(uint64(dst[i]))
		} else {
			fmt.Println(dst[i])
		}
	}
}

func runWrite(args []string) {
	fs := flag.NewFlagSet("write", flag.ExitOnError)
	cfgPath := fs.String("config", config.DefaultConfigPath, "config file path")
	out := fs.String("o", "", "output file (required)")
	column := fs.String("column", "data", "column name")
	typeName := fs.String("type", "int64", "declared type: int64 or uint64")
	groupSize := fs.Int("row-group-size", 0, "rows per row group (0 = config default)")
	fs.Parse(args)
	if *out == "" {
		log.Fatal("usage: shale write -o <file> [-column name] [-type t] [-row-group-size n] [values...]")
	}

	cfg := loadConfig(*cfgPath)
	size := *groupSize
	if size == 0 {
		size = cfg.Write.RowGroupSize
	}

	var typ shale.Type
	switch *typeName {
	case "int64":
		typ = shale.Int64
	case "uint64":
		typ = shale.Uint64
	default:
		log.Fatalf("unsupported declared type %q", *typeName)
	}

	values, err := readValues(fs.Args(), typ)
	if err != nil {
		log.Fatalf("parse values: %v", err)
	}

	if err := shale.WriteColumn(*out, *column, values, size, typ); err != nil {
		log.Fatalf("WriteColumn: %v", err)
	}
	fmt.Printf("wrote %d values to %s\n", len(values), *out)
}

// readValues parses values from the argument list, or from stdin (one per
// line) when no arguments are given. Unsigned input parses as uint64 and
// is stored as its bit pattern.
func readValues(args []string, typ shale.Type) ([]int64, error) {
	tokens := args
	if len(tokens) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				tokens = append(tokens, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	values := make([]int64, 0, len(tokens))
	for _, tok := range tokens {
		if typ == shale.Uint64 {
			u, err := strconv.ParseUint(tok, 10, 64)
			if err != nil {
				return nil, err
			}
			values = append(values, int64(u))
		} else {
			v, err := strconv.ParseInt(tok, 10, 64)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
	}
	return values, nil
}

func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	cfgPath := fs.String("config", config.DefaultConfigPath, "config file path")
	outDir := fs.String("dir", "", "output directory (default: alongside input)")
	fs.Parse(args)
	if fs.NArg() == 0 {
		log.Fatal("usage: shale import [-dir out] <file.parquet>...")
	}
	loadConfig(*cfgPath)

	// Each import touches its own pair of files, so inputs convert
	// concurrently.
	var g errgroup.Group
	for _, in := range fs.Args() {
		in := in
		g.Go(func() error {
			out := strings.TrimSuffix(in, filepath.Ext(in)) + ".shale"
			if *outDir != "" {
				out = filepath.Join(*outDir, filepath.Base(out))
			}
			stats, err := parquet.ImportFile(in, out)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			fmt.Printf("%s: %d columns, %d rows -> %s\n", in, stats.Columns, stats.Rows, stats.Path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("Import: %v", err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	cfgPath := fs.String("config", config.DefaultConfigPath, "config file path")
	column := fs.String("column", "", "column name (required)")
	compression := fs.String("compression", "zstd", "compression: none, snappy, zstd, lz4, gzip")
	fs.Parse(args)
	if fs.NArg() != 2 || *column == "" {
		log.Fatal("usage: shale export -column <name> [-compression c] <file.shale> <out.parquet>")
	}
	loadConfig(*cfgPath)

	opts := parquet.Options{Compression: parquet.ParseCompressionType(*compression)}
	rows, err := parquet.ExportColumn(fs.Arg(0), fs.Arg(1), *column, opts)
	if err != nil {
		log.Fatalf("Export: %v", err)
	}
	fmt.Printf("exported %d rows to %s\n", rows, fs.Arg(1))
}

func runQuery(args []string) {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	cfgPath := fs.String("config", config.DefaultConfigPath, "config file path")
	var views stringList
	fs.Var(&views, "view", "name=path.parquet view registration (repeatable)")
	fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatal("usage: shale query [-view name=file.parquet]... <sql>")
	}

	cfg := loadConfig(*cfgPath)
	svc, err := query.New(cfg.Query.MemoryLimit)
	if err != nil {
		log.Fatalf("Query service: %v", err)
	}
	defer svc.Close()

	ctx := context.Background()
	for _, v := range views {
		name, path, ok := strings.Cut(v, "=")
		if !ok {
			log.Fatalf("invalid -view %q, want name=path", v)
		}
		if err := svc.RegisterParquet(ctx, name, path); err != nil {
			log.Fatalf("Register view: %v", err)
		}
	}

	cols, rows, err := svc.Query(ctx, fs.Arg(0))
	if err != nil {
		log.Fatalf("Query: %v", err)
	}
	fmt.Println(strings.Join(cols, "\t"))
	for _, row := range rows {
		parts := make([]string, len(row))
		for i, v := range row {
			parts[i] = fmt.Sprint(v)
		}
		fmt.Println(strings.Join(parts, "\t"))
	}
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string     { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error { *s = append(*s, v); return nil }
