package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/claude/liftcalc/internal/plates"
	"github.com/claude/liftcalc/internal/rpe"
	"github.com/claude/liftcalc/internal/views"
)

func renderPage(w http.ResponseWriter, r *http.Request, status int, title string, body templ.Component) {
	templ.Handler(views.Layout(title, body), templ.WithStatus(status)).ServeHTTP(w, r)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, "", views.Home())
}

func (s *Server) defaultPlatePage() views.PlatePage {
	return views.PlatePage{
		Target:    s.plates.Target,
		Bar:       s.plates.Bar,
		Collars:   s.plates.Collars,
		Inventory: s.plates.Inventory,
		Strategy:  s.strategy,
	}
}

func (s *Server) handlePlatePage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, "Plate calculator", views.PlateCalculator(s.defaultPlatePage()))
}

func (s *Server) handlePlateSubmit(w http.ResponseWriter, r *http.Request) {
	page, err := s.parsePlateForm(r)
	if err != nil {
		page.Error = err.Error()
		renderPage(w, r, http.StatusBadRequest, "Plate calculator", views.PlateCalculator(page))
		return
	}

	req := plates.LoadRequest{
		Target:    page.Target,
		Bar:       page.Bar,
		Collars:   page.Collars,
		Inventory: page.Inventory,
	}
	loadout, err := plates.Plan(req, page.Strategy)
	if err != nil {
		status, _ := errorKind(err)
		page.Error = userMessage(err)
		renderPage(w, r, status, "Plate calculator", views.PlateCalculator(page))
		return
	}
	page.Loadout = &loadout
	renderPage(w, r, http.StatusOK, "Plate calculator", views.PlateCalculator(page))
}

// parsePlateForm builds a fresh page from the posted form. Empty fields fall
// back to the configured defaults. The returned page is usable for
// re-rendering even when err is set.
func (s *Server) parsePlateForm(r *http.Request) (views.PlatePage, error) {
	page := s.defaultPlatePage()
	if err := r.ParseForm(); err != nil {
		return page, fmt.Errorf("reading form: %w", err)
	}

	var err error
	if page.Target, err = formFloat(r, "target", page.Target); err != nil {
		return page, err
	}
	if page.Bar, err = formFloat(r, "bar", page.Bar); err != nil {
		return page, err
	}
	if page.Collars, err = formFloat(r, "collars", page.Collars); err != nil {
		return page, err
	}

	inv := make(plates.Inventory, len(plates.Catalog))
	for _, c := range plates.Catalog {
		n, err := formInt(r, views.PlateField(c.Weight), s.plates.Inventory[c.Weight])
		if err != nil {
			return page, err
		}
		if n != 0 {
			inv[c.Weight] = n
		}
	}
	page.Inventory = inv

	if v := r.PostFormValue("strategy"); v != "" {
		if page.Strategy, err = plates.ParseStrategy(v); err != nil {
			return page, err
		}
	}
	return page, nil
}

func (s *Server) handleE1RMPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, "e1RM calculator", views.E1RMCalculator(views.E1RMPage{Request: s.e1rm}))
}

func (s *Server) handleE1RMSubmit(w http.ResponseWriter, r *http.Request) {
	page := views.E1RMPage{Request: s.e1rm}
	req, err := s.parseE1RMForm(r)
	if err != nil {
		page.Error = err.Error()
		renderPage(w, r, http.StatusBadRequest, "e1RM calculator", views.E1RMCalculator(page))
		return
	}
	page.Request = req

	e1rm, err := rpe.Estimate(req)
	if err != nil {
		status, _ := errorKind(err)
		page.Error = userMessage(err)
		renderPage(w, r, status, "e1RM calculator", views.E1RMCalculator(page))
		return
	}
	page.E1RM = e1rm
	page.HasResult = true
	renderPage(w, r, http.StatusOK, "e1RM calculator", views.E1RMCalculator(page))
}

func (s *Server) parseE1RMForm(r *http.Request) (rpe.Request, error) {
	req := s.e1rm
	if err := r.ParseForm(); err != nil {
		return req, fmt.Errorf("reading form: %w", err)
	}
	var err error
	if req.Weight, err = formFloat(r, "weight", req.Weight); err != nil {
		return req, err
	}
	if req.Reps, err = formFloat(r, "reps", req.Reps); err != nil {
		return req, err
	}
	if req.RPE, err = formFloat(r, "rpe", req.RPE); err != nil {
		return req, err
	}
	if v := r.PostFormValue("bias"); v != "" {
		if req.Bias, err = rpe.ParseBias(v); err != nil {
			return req, err
		}
	}
	return req, nil
}

func formFloat(r *http.Request, name string, def float64) (float64, error) {
	v := strings.TrimSpace(r.PostFormValue(name))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
	if err != nil {
		return def, fmt.Errorf("%s: %q is not a number", name, v)
	}
	return f, nil
}

func formInt(r *http.Request, name string, def int) (int, error) {
	v := strings.TrimSpace(r.PostFormValue(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %q is not a whole number", name, v)
	}
	return n, nil
}
