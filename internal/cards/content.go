package cards

type entry struct {
	text     string
	category string
}

var staticQuestions = []entry{
	{"My therapist says I need to stop talking about ____.", "confession"},
	{"The real reason the meeting ran long: ____.", "work"},
	{"I can't believe the museum built an entire wing for ____.", "absurd"},
	{"Scientists have finally discovered the cure for ____.", "science"},
	{"The worst thing to find in your glove compartment is ____.", "absurd"},
	{"My grandmother's secret ingredient is ____.", "food"},
	{"The next hit reality show: celebrities competing at ____.", "media"},
	{"I knew the party was over when someone brought out ____.", "party"},
	{"The dating app matched me based on our shared love of ____.", "romance"},
	{"Nothing ruins a road trip faster than ____.", "travel"},
	{"The school banned ____ after last year's talent show.", "school"},
	{"My autobiography will be titled 'A Life of ____'.", "confession"},
	{"The weather forecast for tomorrow: cloudy with a chance of ____.", "absurd"},
	{"The new gym class everyone is talking about is hot ____.", "fitness"},
	{"I lost my security deposit because of ____.", "home"},
	{"The astronauts refused to launch without ____.", "science"},
	{"This year's office party theme is ____.", "work"},
	{"The wizard's final exam covered advanced ____.", "fantasy"},
	{"My doctor prescribed two weeks of ____.", "health"},
	{"The small print on the lease specifically forbids ____.", "home"},
	{"Archaeologists were stunned to unearth a 3,000-year-old ____.", "science"},
	{"The band broke up over creative differences about ____.", "media"},
	{"Step one of my five-year plan: ____.", "work"},
	{"The neighbors called the police about our ____.", "home"},
}

var staticAnswers = []entry{
	{"a suspiciously confident pigeon", "animals"},
	{"interpretive dance", "arts"},
	{"lukewarm soup", "food"},
	{"a motivational poster of a cat", "office"},
	{"my collection of novelty spoons", "hobbies"},
	{"an unsolicited slideshow", "office"},
	{"glitter that never comes off", "party"},
	{"a haunted vending machine", "absurd"},
	{"aggressive small talk", "social"},
	{"an expired coupon", "shopping"},
	{"the world's largest rubber band ball", "hobbies"},
	{"a llama in a business suit", "animals"},
	{"passive-aggressive sticky notes", "office"},
	{"karaoke at 7 a.m.", "party"},
	{"a garden gnome with a dark past", "absurd"},
	{"free samples of regret", "shopping"},
	{"an encyclopedia of failed inventions", "science"},
	{"decaf coffee, unannounced", "food"},
	{"a trampoline accident", "sports"},
	{"my browser history", "confession"},
	{"an extremely local newspaper", "media"},
	{"a kazoo solo", "arts"},
	{"forty pounds of mashed potatoes", "food"},
	{"a self-aware roomba", "science"},
	{"the neighbor's drum circle", "home"},
	{"an apology written in calligraphy", "social"},
	{"mismatched socks as a lifestyle", "fashion"},
	{"a parrot that only repeats secrets", "animals"},
	{"mandatory fun", "office"},
	{"a PowerPoint about my feelings", "confession"},
	{"artisanal ice cubes", "food"},
	{"a ventriloquist with stage fright", "arts"},
	{"the last slice of pizza", "food"},
	{"an inflatable medieval castle", "party"},
	{"taxes, but in cursive", "absurd"},
	{"a very long handshake", "social"},
	{"my imaginary friend's lawyer", "absurd"},
	{"a thesaurus with opinions", "media"},
	{"synchronized napping", "sports"},
	{"an ominous fortune cookie", "food"},
	{"the office microwave smell", "office"},
	{"a raccoon with a grudge", "animals"},
	{"sandals with socks", "fashion"},
	{"an a cappella ringtone", "arts"},
	{"unexpected audience participation", "party"},
	{"a treadmill that judges you", "fitness"},
	{"my high school yearbook photo", "confession"},
	{"a suspiciously heavy envelope", "absurd"},
	{"weaponized compliments", "social"},
	{"an all-kale buffet", "food"},
	{"the world's quietest vuvuzela", "sports"},
	{"a timeshare presentation", "travel"},
	{"an off-brand superhero", "media"},
	{"bees, for some reason", "animals"},
	{"a dramatic weather reporter", "media"},
	{"expired glow sticks", "party"},
	{"a very formal water balloon fight", "party"},
	{"my uncle's conspiracy corkboard", "family"},
	{"a sternly worded haiku", "arts"},
	{"complimentary jury duty", "absurd"},
	{"the concept of Mondays", "work"},
	{"a wine tasting of tap water", "food"},
	{"an origami tax return", "hobbies"},
	{"a lifeguard for the ball pit", "party"},
	{"twelve identical twins", "absurd"},
	{"a GPS with commitment issues", "travel"},
	{"hold music, live in concert", "media"},
	{"a cactus hugging booth", "absurd"},
	{"the five-second rule, notarized", "food"},
	{"an armchair detective's armchair", "home"},
	{"a slightly damp handshake", "social"},
	{"the stairs at the end of a leg day", "fitness"},
	{"a pottery class gone wrong", "arts"},
	{"an extremely specific horoscope", "media"},
	{"a queue for another queue", "travel"},
	{"my carefully rehearsed spontaneity", "confession"},
	{"a dictionary missing the letter e", "absurd"},
	{"an escape room with no exit", "party"},
	{"the printer, sensing fear", "office"},
	{"a marathon of commercials", "media"},
}
