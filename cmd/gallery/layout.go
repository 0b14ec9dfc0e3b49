package main

import (
	"io"

	"gallery/internal/layout"
	"gallery/internal/session"

	"gopkg.in/yaml.v3"
)

type placementDoc struct {
	Surface  string     `yaml:"surface"`
	Row      int        `yaml:"row"`
	Side     string     `yaml:"side"`
	Index    int        `yaml:"index"`
	Title    string     `yaml:"title"`
	Image    string     `yaml:"image"`
	Position [3]float32 `yaml:"position,flow"`
	Yaw      float32    `yaml:"yaw"`
	Size     [2]float32 `yaml:"size,flow"`
}

type layoutDoc struct {
	RowsPerLoop  int            `yaml:"rows_per_loop"`
	LoopDistance float32        `yaml:"loop_distance"`
	Placements   []placementDoc `yaml:"placements"`
}

func newLayoutDoc(p layout.Params, placements []layout.Placement) layoutDoc {
	doc := layoutDoc{RowsPerLoop: p.RowsPerLoop(), Placements: make([]placementDoc, 0, len(placements))}
	if p.Loop {
		doc.LoopDistance = p.LoopDistance()
	}
	for _, pl := range placements {
		doc.Placements = append(doc.Placements, placementDoc{
			Surface:  pl.SurfaceID.String(),
			Row:      pl.Row,
			Side:     pl.Side.String(),
			Index:    pl.CatalogIndex,
			Title:    pl.Exhibit.Title,
			Image:    pl.Exhibit.ImageRef,
			Position: pl.Position,
			Yaw:      pl.Yaw,
			Size:     [2]float32{pl.Width, pl.Height},
		})
	}
	return doc
}

// printLayout generates the configured hall and writes it to w without opening a window.
func printLayout(w io.Writer, a *app) error {
	s, err := session.New(a.catalog, a.sessionOptions(), nopAdapter{}, nil, a.log)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newLayoutDoc(s.Hall(), s.Placements())); err != nil {
		return err
	}
	return enc.Close()
}
