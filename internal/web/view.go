package web

import (
	"bytes"
	"html/template"

	"github.com/nao1215/scamcheck/internal/model"
	"github.com/nao1215/scamcheck/internal/render"
	"github.com/nao1215/scamcheck/internal/session"
)

// safetyTips are shown while no check is displayed.
var safetyTips = []string{
	"Never share passwords, PINs, or verification codes",
	"Be suspicious of urgent requests or threats",
	"Verify sender identity through official channels",
	"Check URLs carefully for typos or unusual domains",
}

// tab is one modality button.
type tab struct {
	Modality    model.Modality
	Label       string
	Description string
	Active      bool
}

// panelData feeds the "panel" template.
type panelData struct {
	Kind    session.Kind
	Message string
	Result  *render.HTMLView
	Tips    []string
}

// pageData feeds the "page" template.
type pageData struct {
	Configured bool
	Tabs       []tab
	Active     model.Modality
	Busy       bool
	Panel      template.HTML
	MaxText    int
}

// StatePayload is the JSON form of a transition.
type StatePayload struct {
	Kind       session.Kind          `json:"kind"`
	Modality   model.Modality        `json:"modality"`
	Configured bool                  `json:"configured"`
	Message    string                `json:"message,omitempty"`
	Result     *model.AnalysisResult `json:"result,omitempty"`
	HTML       string                `json:"html"`
}

func newPanelData(st session.State) panelData {
	data := panelData{Kind: st.Kind()}
	switch st := st.(type) {
	case session.Error:
		data.Message = st.Message
	case session.Result:
		if v := render.NewView(st.Result); v != nil {
			data.Result = &render.HTMLView{View: v, Actions: true}
		}
	case session.Idle:
		data.Tips = safetyTips
	}
	return data
}

func newTabs(active model.Modality) []tab {
	tabs := make([]tab, 0, len(model.Modalities))
	for _, m := range model.Modalities {
		tabs = append(tabs, tab{
			Modality:    m,
			Label:       m.Label(),
			Description: m.Description(),
			Active:      m == active,
		})
	}
	return tabs
}

// renderPanel renders the results panel for st.
func (s *Server) renderPanel(st session.State) (template.HTML, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "panel", newPanelData(st)); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil //nolint:gosec // produced by html/template
}

// payload builds the JSON state for tr.
func (s *Server) payload(tr session.Transition) StatePayload {
	p := StatePayload{
		Kind:       tr.State.Kind(),
		Modality:   tr.Modality,
		Configured: s.session.Configured(),
	}
	switch st := tr.State.(type) {
	case session.Error:
		p.Message = st.Message
	case session.Result:
		p.Result = st.Result
	}
	html, err := s.renderPanel(tr.State)
	if err != nil {
		s.logger.Error("failed to render panel", "error", err)
	}
	p.HTML = string(html)
	return p
}
