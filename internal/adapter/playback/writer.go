package playback

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/elaa0505/AzuraCast/internal/domain"
	"github.com/elaa0505/AzuraCast/internal/infrastructure/logger"
	"github.com/elaa0505/AzuraCast/internal/port"
)

const ManifestFile = "station.toml"

// Manifest is the station.toml written next to the playlist files.
type Manifest struct {
	GeneratedAt time.Time       `toml:"generated_at"`
	Station     StationManifest `toml:"station"`
	Playlists   []PlaylistEntry `toml:"playlist"`
}

type StationManifest struct {
	ID          int64  `toml:"id"`
	ShortName   string `toml:"short_name"`
	Name        string `toml:"name"`
	MediaRoot   string `toml:"media_root"`
	StorageUsed int64  `toml:"storage_used"`
	Storage     string `toml:"storage_used_human"`
}

type PlaylistEntry struct {
	ID     int64  `toml:"id"`
	Name   string `toml:"name"`
	File   string `toml:"file"`
	Tracks int    `toml:"tracks"`
}

// Writer renders the playback configuration of a tenant: one .m3u file per
// playlist, in weight order, and a manifest.
type Writer struct {
	fs        afero.Fs
	catalog   port.Catalog
	outputDir string
	logger    *log.Logger
	now       func() time.Time
}

func NewWriter(fs afero.Fs, catalog port.Catalog, outputDir string, l *log.Logger) *Writer {
	if l == nil {
		l = logger.Default()
	}
	return &Writer{
		fs:        fs,
		catalog:   catalog,
		outputDir: outputDir,
		logger:    l.With("component", "playback"),
		now:       time.Now,
	}
}

// Dir is where the configuration of tenant is written.
func (w *Writer) Dir(tenant *domain.Tenant) string {
	return path.Join(w.outputDir, "station_"+tenant.ShortName)
}

func (w *Writer) Regenerate(ctx context.Context, tenant *domain.Tenant) error {
	dir := w.Dir(tenant)
	if err := w.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	playlists, err := w.catalog.ListPlaylists(ctx, tenant.ID)
	if err != nil {
		return fmt.Errorf("list playlists: %w", err)
	}

	manifest := Manifest{
		GeneratedAt: w.now().UTC().Truncate(time.Second),
		Station: StationManifest{
			ID:          tenant.ID,
			ShortName:   tenant.ShortName,
			Name:        tenant.Name,
			MediaRoot:   tenant.MediaRoot,
			StorageUsed: tenant.StorageUsed,
			Storage:     humanize.IBytes(uint64(max(tenant.StorageUsed, 0))),
		},
		Playlists: []PlaylistEntry{},
	}

	written := make(map[string]struct{}, len(playlists))
	for _, p := range playlists {
		if err := ctx.Err(); err != nil {
			return err
		}
		entries, err := w.catalog.ListPlaylistEntries(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("list entries of playlist %d: %w", p.ID, err)
		}

		name := PlaylistFile(p)
		if err := w.writeFile(path.Join(dir, name), renderM3U(tenant, entries)); err != nil {
			return err
		}
		written[name] = struct{}{}
		manifest.Playlists = append(manifest.Playlists, PlaylistEntry{
			ID:     p.ID,
			Name:   p.Name,
			File:   name,
			Tracks: len(entries),
		})
	}

	if err := w.removeStale(dir, written); err != nil {
		w.logger.Warn("could not remove stale playlist files", "station", tenant.ShortName, "error", err)
	}

	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(manifest); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := w.writeFile(path.Join(dir, ManifestFile), []byte(buf.String())); err != nil {
		return err
	}

	w.logger.Info("playback configuration written",
		"station", tenant.ShortName,
		"playlists", len(playlists),
		"dir", dir)
	return nil
}

// ReadManifest loads the manifest last written for tenant.
func (w *Writer) ReadManifest(tenant *domain.Tenant) (*Manifest, error) {
	data, err := afero.ReadFile(w.fs, path.Join(w.Dir(tenant), ManifestFile))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if _, err := toml.Decode(string(data), &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9]+`)

// PlaylistFile is the file name of the .m3u written for p.
func PlaylistFile(p *domain.Playlist) string {
	slug := strings.Trim(unsafeChars.ReplaceAllString(strings.ToLower(p.Name), "_"), "_")
	if slug == "" {
		return fmt.Sprintf("playlist_%d.m3u", p.ID)
	}
	return fmt.Sprintf("playlist_%d_%s.m3u", p.ID, slug)
}

func renderM3U(tenant *domain.Tenant, entries []domain.PlaylistEntry) []byte {
	var b strings.Builder
	b.WriteString("#EXTM3U\n")
	for _, e := range entries {
		b.WriteString(path.Join(tenant.MediaRoot, e.Path))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// writeFile replaces name through a temporary file so readers never see a
// partial playlist.
func (w *Writer) writeFile(name string, data []byte) error {
	tmp := name + ".tmp"
	if err := afero.WriteFile(w.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := w.fs.Rename(tmp, name); err != nil {
		return multierr.Append(fmt.Errorf("replace %s: %w", name, err), w.fs.Remove(tmp))
	}
	return nil
}

func (w *Writer) removeStale(dir string, keep map[string]struct{}) error {
	infos, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		return err
	}
	var errs error
	for _, info := range infos {
		if info.IsDir() || path.Ext(info.Name()) != ".m3u" {
			continue
		}
		if _, ok := keep[info.Name()]; ok {
			continue
		}
		errs = multierr.Append(errs, w.fs.Remove(path.Join(dir, info.Name())))
	}
	return errs
}

var _ port.ConfigRegenerator = (*Writer)(nil)
