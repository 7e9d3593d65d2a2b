package catalogfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yusched/schedule-generator/internal/config"
	"github.com/yusched/schedule-generator/internal/core/domain"
	"github.com/yusched/schedule-generator/internal/core/ports/out"
)

// CatalogFileAdapter читает данные термов из JSON-файлов в каталоге.
// Файлы именуются как 2024_2025spring.json -> терм "2024-2025 Spring".
type CatalogFileAdapter struct {
	dir    string
	suffix string
	logger out.LoggerPort
}

func NewCatalogFileAdapter(cfg *config.Config, logger out.LoggerPort) *CatalogFileAdapter {
	return &CatalogFileAdapter{
		dir:    cfg.Catalog.TermsDir,
		suffix: cfg.Catalog.TermSuffix,
		logger: logger,
	}
}

// termFiles возвращает имена файлов термов, отсортированные по убыванию,
// то есть самый свежий терм первым
func (a *CatalogFileAdapter) termFiles() ([]string, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read terms dir %s: %w", a.dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), a.suffix) {
			continue
		}
		files = append(files, entry.Name())
	}

	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	return files, nil
}

// termNameFromFile: "2024_2025spring.json" -> "2024-2025 Spring"
func (a *CatalogFileAdapter) termNameFromFile(filename string) string {
	base := strings.TrimSuffix(filename, a.suffix)
	base = strings.Trim(strings.ReplaceAll(base, "_", "-"), "-")
	return base + " Spring"
}

// fileFromTerm: "2024-2025 Spring" -> "2024_2025spring.json"
func (a *CatalogFileAdapter) fileFromTerm(term string) string {
	base := strings.ToLower(term)
	base = strings.ReplaceAll(base, " ", "")
	base = strings.ReplaceAll(base, "-", "_")
	return base + ".json"
}

func (a *CatalogFileAdapter) ListTerms(ctx context.Context) ([]string, error) {
	files, err := a.termFiles()
	if err != nil {
		return nil, err
	}

	terms := make([]string, 0, len(files))
	for _, file := range files {
		terms = append(terms, a.termNameFromFile(file))
	}
	return terms, nil
}

// ResolveTerm отдает запрошенный терм, если его файл существует, иначе
// откатывается на самый свежий доступный. Без единого файла - ErrCatalogNotFound.
func (a *CatalogFileAdapter) ResolveTerm(ctx context.Context, term string) (string, error) {
	if term != "" {
		path := filepath.Join(a.dir, a.fileFromTerm(term))
		if _, err := os.Stat(path); err == nil {
			return term, nil
		}

		a.logger.Warn("catalog.term.fallback", out.LogFields{
			"term": term,
		})
	}

	files, err := a.termFiles()
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", out.ErrCatalogNotFound
	}

	return a.termNameFromFile(files[0]), nil
}

func (a *CatalogFileAdapter) LoadTermData(ctx context.Context, term string) (domain.RawTermData, error) {
	path := filepath.Join(a.dir, a.fileFromTerm(term))

	a.logger.Info("catalog.term.load", out.LogFields{
		"term": term,
		"path": path,
	})

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("term %q: %w", term, out.ErrCatalogNotFound)
		}
		a.logger.Error("catalog.term.load_failed", out.LogFields{
			"term":  term,
			"error": err.Error(),
		})
		return nil, err
	}
	defer file.Close()

	var raw domain.RawTermData
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		a.logger.Error("catalog.term.decode_failed", out.LogFields{
			"term":  term,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to decode term file %s: %w", path, err)
	}

	a.logger.Debug("catalog.term.load_success", out.LogFields{
		"term":    term,
		"courses": len(raw),
	})

	return raw, nil
}
