package catalog

import "readaloud/internal/domain/resource"

// SampleCollection returns a small built-in set of resources so the reader
// works without the platform API.
func SampleCollection() resource.Collection {
	return resource.Collection{
		Name: "Built-in Sample Resources",
		Resources: []resource.Item{
			{
				ID:            "intro-photosynthesis",
				Topic:         "Photosynthesis",
				Subject:       "Biology",
				LearningStyle: "auditory",
				Duration:      "5 minutes",
				Description:   "How plants turn sunlight into energy",
				Content: "# Photosynthesis\n\nPhotosynthesis is the process plants use to convert " +
					"light energy into chemical energy. It happens inside structures called " +
					"**chloroplasts**. Plants take in carbon dioxide from the air and water from " +
					"the soil. Using sunlight, they produce glucose and release oxygen.\n\n" +
					"The overall reaction combines six molecules of carbon dioxide with six " +
					"molecules of water. Sunlight drives the reaction forward. The products are " +
					"one molecule of glucose and six molecules of oxygen. Nearly all life on " +
					"Earth depends on this process, either directly or indirectly.",
			},
			{
				ID:            "intro-fractions",
				Topic:         "Fractions",
				Subject:       "Mathematics",
				LearningStyle: "auditory",
				Duration:      "4 minutes",
				Description:   "Understanding parts of a whole",
				Content: "## Fractions\n\nA fraction represents a part of a whole. The number " +
					"above the line is the *numerator*. It tells you how many parts you have. " +
					"The number below the line is the *denominator*. It tells you how many " +
					"equal parts the whole is divided into.\n\nImagine a pizza cut into eight " +
					"slices. If you eat three slices, you have eaten three eighths of the pizza. " +
					"Fractions with the same denominator are easy to add. You simply add the " +
					"numerators and keep the denominator.",
			},
			{
				ID:            "intro-water-cycle",
				Topic:         "The Water Cycle",
				Subject:       "Earth Science",
				LearningStyle: "auditory",
				Duration:      "6 minutes",
				Description:   "How water moves through our planet",
				Content: "# The Water Cycle\n\nWater constantly moves between the oceans, the " +
					"atmosphere, and the land. The sun heats water in oceans and lakes, turning " +
					"it into vapor through **evaporation**. The vapor rises, cools, and forms " +
					"clouds through condensation.\n\nWhen clouds grow heavy, water falls back to " +
					"Earth as precipitation! Rain, snow, and hail are all forms of it. Some water " +
					"soaks into the ground. Some flows back to the sea in rivers. Then the cycle " +
					"begins again.",
			},
		},
	}
}
