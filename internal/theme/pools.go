// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

// pool is one row of the theme table: a key matched against the user's
// theme text and the subjects that can be drawn for it.
type pool struct {
	key      string
	subjects []string
}

// pools is scanned in order; the first matching key wins.
var pools = []pool{
	{"toys", []string{
		"cute teddy bear plush toy", "red toy car", "yellow rubber duck toy", "wooden rocking horse",
		"colorful building blocks", "blue toy train", "pink stuffed bunny", "toy robot",
		"toy airplane", "toy drum", "red bouncy ball", "toy sailboat", "colorful kite",
		"green toy dinosaur", "toy fire truck", "toy xylophone", "toy rocket ship",
		"wooden spinning top", "toy helicopter", "stuffed elephant toy",
	}},
	{"food", []string{
		"pizza slice", "hamburger", "ice cream cone", "cupcake", "donut", "taco",
		"hot dog", "french fries", "sushi roll", "cookie", "apple", "banana",
		"watermelon slice", "birthday cake", "lollipop", "pretzel", "popcorn", "sandwich",
		"croissant", "pancakes", "waffle", "fried egg", "avocado", "strawberry",
	}},
	{"travel", []string{
		"airplane", "suitcase", "passport", "globe", "compass", "map",
		"camera", "binoculars", "tent", "backpack", "train", "cruise ship",
		"hot air balloon", "luggage tag", "sunglasses", "beach umbrella", "palm tree", "lighthouse",
	}},
	{"technology", []string{
		"smartphone", "laptop computer", "headphones", "camera", "smartwatch", "tablet",
		"desktop computer", "gaming controller", "USB drive", "wireless mouse", "keyboard", "monitor",
		"VR headset", "drone", "robot", "microchip", "satellite", "rocket",
	}},
	{"sports", []string{
		"soccer ball", "basketball", "tennis racket", "baseball bat", "football", "golf ball",
		"hockey stick", "volleyball", "bowling pin", "skateboard", "surfboard", "bicycle",
		"dumbbells", "boxing gloves", "medal", "trophy", "stopwatch", "whistle",
	}},
	{"music", []string{
		"guitar", "headphones", "microphone", "piano keys", "drum", "violin",
		"trumpet", "saxophone", "music note", "vinyl record", "speaker", "harmonica",
		"maracas", "tambourine", "flute", "ukulele", "boombox", "DJ turntable",
	}},
	{"nature", []string{
		"tree", "flower", "sun", "cloud", "mountain", "rainbow",
		"leaf", "mushroom", "cactus", "snowflake", "raindrop", "lightning bolt",
		"moon", "star", "wave", "campfire", "pine tree", "sunflower",
	}},
	{"animals", []string{
		"cat", "dog", "bird", "fish", "rabbit", "bear",
		"elephant", "lion", "penguin", "owl", "butterfly", "ladybug",
		"fox", "deer", "whale", "dolphin", "turtle", "bee",
		"frog", "unicorn", "panda", "koala", "giraffe", "monkey",
	}},
	{"office", []string{
		"pencil", "notebook", "coffee cup", "desk lamp", "calculator", "stapler",
		"paperclip", "folder", "briefcase", "calendar", "clock", "envelope",
		"scissors", "ruler", "sticky note", "printer", "desk chair", "filing cabinet",
	}},
	{"health", []string{
		"heart", "apple", "dumbbell", "water bottle", "stethoscope", "pill",
		"first aid kit", "bandage", "thermometer", "syringe", "yoga mat", "running shoe",
		"smoothie", "salad bowl", "meditation pose", "tooth", "eye", "brain",
	}},
	{"weather", []string{
		"sun", "cloud", "raindrop", "snowflake", "lightning bolt", "rainbow",
		"umbrella", "thermometer", "wind", "tornado", "fog", "moon",
	}},
	{"holidays", []string{
		"christmas tree", "pumpkin", "easter egg", "firework", "gift box", "candy cane",
		"heart balloon", "party hat", "birthday cake", "snowman", "turkey", "shamrock",
	}},
	{"school", []string{
		"book", "pencil", "backpack", "apple", "globe", "ruler",
		"graduation cap", "school bus", "chalkboard", "microscope", "paint palette", "calculator",
	}},
}
