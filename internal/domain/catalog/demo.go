package catalog

const assetBase = "https://storage.googleapis.com/rbm-boot-camp-15.appspot.com/bot_assets"

// NewDemo returns the demo shoe inventory. Order is fixed so carousels render
// deterministically.
func NewDemo() Catalog {
	return New([]Item{
		NewItem("Blue Running Shoes", assetBase+"/blue_running_shoes.jpeg", 49.99, map[string][]string{
			"size":  {"7", "8", "9"},
			"color": {"blue"},
			"brand": {"Adidas"},
		}),
		NewItem("Neon Running Shoes", assetBase+"/neon_running_shoes.jpg", 59.99, map[string][]string{
			"size":  {"8", "9"},
			"color": {"neon"},
			"brand": {"Nike"},
		}),
		NewItem("Pink Running Shoes", assetBase+"/pink_running_shoes.jpeg", 39.99, map[string][]string{
			"size":  {"6", "7", "9"},
			"color": {"pink"},
			"brand": {"New Balance"},
		}),
		NewItem("Teal Running Shoes", assetBase+"/teal_running_shoes.jpg", 44.99, map[string][]string{
			"size":  {"6", "7"},
			"color": {"teal"},
			"brand": {"New Balance"},
		}),
		NewItem("White Running Shoes", assetBase+"/white_running_shoes.jpg", 54.99, map[string][]string{
			"size":  {"5", "8", "9"},
			"color": {"white"},
			"brand": {"Adidas"},
		}),
	})
}
