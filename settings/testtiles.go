package settings

import "github.com/RustamC/wotan/rrgraph"

// allocAndSetTestTileCoords picks the tiles path enumeration is initiated
// from: every tile of FillType, restricted to the interior when
// analyzeCore is set.
func (s *Settings) allocAndSetTestTileCoords(store *rrgraph.Store, analyzeCore bool) {
	w, h := store.GridSize()
	grid := store.Grid()
	var coords []Coordinate
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if analyzeCore && (x == 0 || y == 0 || x == w-1 || y == h-1) {
				continue
			}
			if x < len(grid) && y < len(grid[x]) && grid[x][y].TypeIndex == store.FillType() {
				coords = append(coords, Coordinate{X: x, Y: y})
			}
		}
	}
	s.TestTileCoords = coords
}
