package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	goio "io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/dot5enko/pst-blocks/block"
	"github.com/dot5enko/pst-blocks/compression"
	"github.com/dot5enko/pst-blocks/config"
	"github.com/dot5enko/pst-blocks/io"
	"github.com/dot5enko/pst-blocks/manager"
	"github.com/fatih/color"
)

type options struct {
	file   string
	format string

	bid    string
	offset string
	cb     int

	// "bid offset cb" per line, the blocks a data or subnode tree refers to
	entries     string
	cacheBlocks int

	dump   bool
	export string
	rawOut string
}

func parseOptions(cfg config.Config, args []string) (options, error) {
	var o options

	fs := flag.NewFlagSet("pstblock", flag.ContinueOnError)
	fs.StringVar(&o.file, "file", cfg.File, "container file")
	fs.StringVar(&o.format, "format", cfg.Format, "narrow|ansi or wide|unicode")
	fs.StringVar(&o.bid, "bid", "", "block id, decimal or 0x hex")
	fs.StringVar(&o.offset, "offset", "", "block offset in the file, decimal or 0x hex")
	fs.IntVar(&o.cb, "cb", 0, "logical block size")
	fs.StringVar(&o.entries, "entries", "", "file listing further block tree entries")
	fs.IntVar(&o.cacheBlocks, "cache-blocks", cfg.CacheBlocks, "decoded blocks kept in memory")
	fs.BoolVar(&o.dump, "dump", cfg.Debug, "dump the decoded block")
	fs.StringVar(&o.export, "export", "", "write the reassembled payload lz4 compressed to this path")
	fs.StringVar(&o.rawOut, "raw-out", "", "write the raw block image to this path")

	if err := fs.Parse(args); err != nil {
		return o, err
	}

	if o.file == "" || o.bid == "" || o.offset == "" {
		fs.Usage()
		return o, fmt.Errorf("-file, -bid and -offset are required")
	}

	return o, nil
}

func parseNumber(s string) (uint64, error) {
	return strconv.ParseUint(s, 0, 64)
}

func parseEntry(bidText, offsetText, cbText string) (block.Entry, error) {
	bid, err := parseNumber(bidText)
	if err != nil {
		return block.Entry{}, fmt.Errorf("bad bid %q: %w", bidText, err)
	}

	offset, err := parseNumber(offsetText)
	if err != nil {
		return block.Entry{}, fmt.Errorf("bad offset %q: %w", offsetText, err)
	}

	cb, err := strconv.ParseUint(cbText, 0, 16)
	if err != nil {
		return block.Entry{}, fmt.Errorf("bad cb %q: %w", cbText, err)
	}

	return block.Entry{
		BREF: block.BREF{BID: block.BID(bid), Offset: offset},
		CB:   uint16(cb),
	}, nil
}

func (o options) entry() (block.Entry, error) {
	return parseEntry(o.bid, o.offset, strconv.Itoa(o.cb))
}

// readEntryList parses "bid offset cb" lines, blank lines and # comments
// are skipped.
func readEntryList(r goio.Reader) ([]block.Entry, error) {
	var out []block.Entry

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: expected bid offset cb, got %q", line, text)
		}

		entry, err := parseEntry(fields[0], fields[1], fields[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, entry)
	}

	return out, scanner.Err()
}

func loadEntryList(path string, resolver *manager.MapResolver) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := readEntryList(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	for _, e := range entries {
		resolver.AddEntry(e)
	}

	color.Yellow(" %d block tree entries loaded from %s", len(entries), path)
	return nil
}

func describe(b block.Block) string {
	switch v := b.(type) {
	case *block.DataBlock:
		return fmt.Sprintf("%d payload bytes", len(v.Data))
	case *block.XBlock:
		return fmt.Sprintf("%d children, %d bytes total", len(v.Children), v.TotalSize)
	case *block.XXBlock:
		return fmt.Sprintf("%d xblocks, %d bytes total", len(v.Children), v.TotalSize)
	case *block.SubnodeLeafBlock:
		return fmt.Sprintf("%d subnodes", len(v.Entries))
	case *block.SubnodeIntermediateBlock:
		return fmt.Sprintf("%d leaf blocks", len(v.Entries))
	}
	return ""
}

func export(m *manager.Manager, bid block.BID, path string) error {
	data, err := m.ReadData(bid)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if err = compression.CompressLz4(data, out); err != nil {
		return err
	}

	color.Yellow(" %d payload bytes exported to %s", len(data), path)
	return nil
}

func run(o options) error {

	format, err := block.ParseFormat(o.format)
	if err != nil {
		return err
	}

	entry, err := o.entry()
	if err != nil {
		return err
	}

	reader := io.NewFileReader(o.file)
	if !reader.Exists() {
		return fmt.Errorf("file %s does not exist", o.file)
	}
	if err = reader.Open(true); err != nil {
		return err
	}
	defer reader.Close()

	pages := io.NewBlockFile(reader, format)

	if o.rawOut != "" {
		raw, err := pages.ReadRaw(entry)
		if err != nil {
			return err
		}
		if err = io.DumpRawBlock(o.rawOut, raw); err != nil {
			return err
		}
	}

	entries := manager.NewMapResolver(format)
	if o.entries != "" {
		if err = loadEntryList(o.entries, entries); err != nil {
			return err
		}
	}
	entries.AddEntry(entry)

	m, err := manager.New(manager.ManagerConfig{
		Format:         format,
		CacheMaxBlocks: o.cacheBlocks,
		Debug:          o.dump,
	}, pages, entries)
	if err != nil {
		return err
	}

	decoded, err := m.LoadBlock(entry.BREF.BID)
	if err != nil {
		return err
	}

	color.Green(" block %s ok: %s, %s", entry, decoded.Kind(), describe(decoded))

	if o.dump {
		spew.Dump(decoded)
	}

	if o.export != "" {
		if err = export(m, entry.BREF.BID, o.export); err != nil {
			return err
		}
	}

	if o.dump {
		spew.Dump(m.Stats())
	}

	return nil
}

func main() {

	o, err := parseOptions(config.LoadConfig(), os.Args[1:])
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			color.Red(" !!! %s", err.Error())
		}
		os.Exit(2)
	}

	if err := run(o); err != nil {
		color.Red(" !!! %s", err.Error())
		log.Fatal(err)
	}
}
