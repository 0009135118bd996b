package tui

import (
	"log/slog"
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"flightmap/internal/annotation"
	"flightmap/internal/catalog"
	"flightmap/internal/geom"
	"flightmap/internal/symbology"
)

// worldBBox is the viewport before anything is loaded.
var worldBBox = geom.BBox{MinX: -180, MinY: -90, MaxX: 180, MaxY: 90}

// Options wires the model to the rest of the application.
type Options struct {
	Logger     *slog.Logger
	Defaults   symbology.Defaults
	LayerColor string
	// Annotations is the drawing-tool state; a fresh store is created when nil.
	Annotations *annotation.Store
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string
	log    *slog.Logger

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	features      []geom.Feature
	layerFeatures []geom.Feature
	points        [][2]float64
	bbox          geom.BBox
	lines         [][][2]float64
	polygons      [][][][2]float64

	// last rendered map size (for inspect and drawing)
	mapW int
	mapH int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showPoints bool
	showLines  bool
	showPolys  bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// attributes table
	showAttrs bool
	tbl       table.Model

	// raster catalog
	project    *catalog.Project
	products   []catalog.DataProduct
	active     int
	styles     map[uuid.UUID]symbology.Symbology
	layers     []catalog.Layer
	showRaster bool
	resolver   *symbology.Resolver
	defaults   symbology.Defaults
	layerColor string

	// annotation drawing tool
	annot       *annotation.Store
	draw        *drawControl
	annotations []geom.Feature
}

func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Defaults.ColorRamp == "" {
		opts.Defaults = symbology.StandardDefaults
	}
	if opts.LayerColor == "" {
		opts.LayerColor = "#ffde21"
	}
	if opts.Annotations == nil {
		opts.Annotations = annotation.NewStore()
	}
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "flightmap ready",
		log:         opts.Logger,
		bbox:        worldBBox,
		showPoints:  true,
		showLines:   true,
		showPolys:   true,
		styles:      map[uuid.UUID]symbology.Symbology{},
		resolver:    symbology.NewResolver(opts.Logger),
		defaults:    opts.Defaults,
		layerColor:  opts.LayerColor,
		annot:       opts.Annotations,
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POINT, MULTIPOINT, LINESTRING, POLYGON). Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table setup (columns will be inferred per dataset)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a vector file or catalog at launch.
func NewWithPath(path string, opts Options) Model {
	m := New(opts)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }
