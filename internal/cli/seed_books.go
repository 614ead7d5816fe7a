package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mrlokans/elibrary/internal/entities"
)

// BookCreator persists a batch of catalogue entries.
type BookCreator interface {
	CreateBooks(ctx context.Context, books []entities.Book) error
}

// SeedBooksCommand loads a YAML (or JSON) catalogue into the books table.
// Books have no HTTP write endpoint, so this is how a catalogue gets in.
type SeedBooksCommand struct {
	FilePath string
	DryRun   bool
	Log      *zap.Logger
}

func NewSeedBooksCommand(filePath string, dryRun bool, log *zap.Logger) *SeedBooksCommand {
	return &SeedBooksCommand{FilePath: filePath, DryRun: dryRun, Log: log}
}

// Catalogue is the seed file layout:
//
//	books:
//	  - title: Dune
//	    description: Desert planet politics
//	    category: fiction
//	    tags: [classic, space]
//	    content: ...
type Catalogue struct {
	Books []CatalogueEntry `yaml:"books"`
}

type CatalogueEntry struct {
	Title       string  `yaml:"title"`
	Description *string `yaml:"description"`
	Category    *string `yaml:"category"`
	Tags        TagList `yaml:"tags"`
	Content     string  `yaml:"content"`
}

// TagList accepts either "a,b" or a YAML sequence and is stored comma-joined.
type TagList []string

func (t *TagList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var raw string
		if err := node.Decode(&raw); err != nil {
			return err
		}
		*t = splitTags(raw)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*t = items
		return nil
	default:
		return fmt.Errorf("line %d: tags must be a string or a list", node.Line)
	}
}

func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ParseCatalogue decodes a catalogue and converts it to entities. Unknown
// keys and entries without a title are rejected.
func ParseCatalogue(r io.Reader) ([]entities.Book, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var catalogue Catalogue
	if err := decoder.Decode(&catalogue); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalogue is empty")
		}
		return nil, fmt.Errorf("failed to parse catalogue: %w", err)
	}

	books := make([]entities.Book, 0, len(catalogue.Books))
	for i, entry := range catalogue.Books {
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			return nil, fmt.Errorf("entry %d: title is required", i+1)
		}

		book := entities.Book{
			Title:       title,
			Description: entry.Description,
			Category:    entry.Category,
			Content:     entry.Content,
		}
		if len(entry.Tags) > 0 {
			joined := strings.Join(entry.Tags, ",")
			book.Tags = &joined
		}
		books = append(books, book)
	}
	return books, nil
}

// Run parses the file and, unless DryRun is set, inserts every entry.
// It returns the number of books read.
func (cmd *SeedBooksCommand) Run(ctx context.Context, creator BookCreator) (int, error) {
	file, err := os.Open(cmd.FilePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open catalogue: %w", err)
	}
	defer file.Close()

	books, err := ParseCatalogue(file)
	if err != nil {
		return 0, err
	}

	log := cmd.Log.With(zap.String("file", cmd.FilePath), zap.Int("books", len(books)))
	if cmd.DryRun {
		for _, b := range books {
			log.Debug("would seed book", zap.String("title", b.Title))
		}
		log.Info("dry run, nothing written")
		return len(books), nil
	}

	if len(books) == 0 {
		log.Warn("catalogue has no books")
		return 0, nil
	}

	if err := creator.CreateBooks(ctx, books); err != nil {
		return 0, fmt.Errorf("failed to seed books: %w", err)
	}

	log.Info("catalogue seeded")
	return len(books), nil
}
