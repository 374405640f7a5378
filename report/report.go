/*
 * report.go, part of godock.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package report renders a per-engine affinity chart for a finished
//docking run. Plotting is a convenience on top of the persisted
//record; callers treat a failure here as a warning, not as a failed
//run.
package report

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"godock/dock"
)

//Error messages for the report package.
const (
	ErrNoScores = "godock/report: record has no per-engine scores to plot"
	ErrPlot     = "godock/report: cannot render affinity plot"
)

//Error is the error type for the report package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string { return err.message }

//Decorate adds dec to the decoration slice of the error, unless dec is
//empty, and returns the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or can be ignored.
func (err Error) Critical() bool { return err.critical }

//Plot writes a bar chart of the record's per-engine affinities to
//pngPath, with a horizontal reference line at the consensus affinity
//when one is present. Failed engines are drawn as zero-height bars so
//the gap in the ensemble stays visible.
func Plot(rec *dock.Record, pngPath string) error {
	if rec == nil || len(rec.PerEngine) == 0 {
		return Error{ErrNoScores, []string{"Plot"}, false}
	}
	p := plot.New()
	p.Title.Text = "Per-engine binding affinity"
	p.Y.Label.Text = "Affinity (kcal/mol)"

	values := make(plotter.Values, len(rec.PerEngine))
	names := make([]string, len(rec.PerEngine))
	for i, r := range rec.PerEngine {
		names[i] = r.Engine
		if r.Succeeded {
			values[i] = r.Affinity
		}
	}
	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return Error{ErrPlot + ": " + err.Error(), []string{"Plot"}, false}
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	p.Add(bars)
	p.NominalX(names...)

	if rec.ConsensusAffinity != nil {
		line := plotter.NewFunction(func(float64) float64 { return *rec.ConsensusAffinity })
		line.Color = color.RGBA{R: 200, A: 255}
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add("consensus", line)
		p.Legend.Top = true
	}
	p.Add(plotter.NewGrid())

	if err := p.Save(6*vg.Inch, 4*vg.Inch, pngPath); err != nil {
		return Error{ErrPlot + ": " + err.Error(), []string{"Plot"}, false}
	}
	return nil
}
