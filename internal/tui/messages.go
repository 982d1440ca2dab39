package tui

import (
	"github.com/MatthewDes/EcosolGIS-website/internal/catalog"
)

type catalogLoadedMsg struct {
	cat catalog.Catalog
}

type loadErrMsg struct {
	err error
}

type actionErrMsg struct {
	err error
}

// searchDebounceMsg fires after the search quiet period. gen identifies
// the keystroke that armed it; a stale generation is dropped.
type searchDebounceMsg struct {
	gen int
}
