// Package render turns the render elements produced by formatters into output
// documents. Renderers are looked up by name through Registry and receive
// per-request RenderOptions carrying locale, translator and theme data.
package render
