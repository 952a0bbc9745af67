package server

import "html/template"

// applyTemplateFuncs merges extra func maps into base without overriding
// names the server already defines.
func applyTemplateFuncs(base template.FuncMap, extras ...template.FuncMap) {
	if base == nil {
		return
	}
	for _, extra := range extras {
		if extra == nil {
			continue
		}
		for name, fn := range extra {
			if _, exists := base[name]; exists {
				continue
			}
			base[name] = fn
		}
	}
}
