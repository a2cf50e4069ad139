// Package viz draws folio in the terminal: a braille dot canvas for the
// steering demo, and the lipgloss themes and styles shared by every page.
//
//   - [Canvas]: 2x4 braille dots per cell
//   - [DrawScene]: renders a play snapshot through its camera
//   - [Theme], [Styles]: color schemes and the styles derived from them
package viz
