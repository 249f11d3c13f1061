package vision

// listingFields is the full extraction schema used when prefilling a new
// listing from a photo. Every field must be present in the model's reply.
var listingFields = []string{
	"make", "model", "year", "color", "bodyType", "price", "mileage",
	"fuelType", "transmission", "description", "confidence",
}

// searchFields is the narrow schema used by the public image search.
var searchFields = []string{"make", "bodyType", "color", "confidence"}

const listingPrompt = `
Analyze the car image and extract the following information:
1. Make (manufacturer)
2. Model
3. Year (approximately)
4. Color
5. Body Type (SUV, Sedan, Hatchback, etc.)
6. Mileage
7. Fuel Type (your best guess)
8. Transmission type (your best guess)
9. Price (Your best guess)
10. Short Description as to be added to a car listing

Format your response as a clean JSON object with these fields:
{
    "make": "",
    "model": "",
    "year": 0000,
    "color": "",
    "price": "",
    "mileage": "",
    "bodyType": "",
    "fuelType": "",
    "transmission": "",
    "description": "",
    "confidence": 0.0
}

For confidence, provide a value between 0 and 1 representing how confident you are in your overall identification.
Only respond with the JSON object, nothing else.
`

const searchPrompt = `
Analyze this car image and extract the following information for a search query:
1. Make (manufacturer)
2. Body type (SUV, Sedan, Hatchback, etc.)
3. Color

Format your response as a clean JSON object with these fields:
{
    "make": "",
    "bodyType": "",
    "color": "",
    "confidence": 0.0
}

For confidence, provide a value between 0 and 1 representing how confident you are in your overall identification.
Only respond with the JSON object, nothing else.
`
