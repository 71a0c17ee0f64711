package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"gigboard/internal/model"
)

const day = 24 * time.Hour

type demoUser struct {
	key, name, email, location, phone, about string
	skills                                   []string
	age                                      time.Duration
}

type demoJob struct {
	key, title, description, location, imageURL string
	skills                                      []string
	payment                                     decimal.Decimal
	sos                                         bool
	status                                      model.JobStatus
	poster, worker                              string
	applicants                                  []string
	age                                         time.Duration
}

type demoMessage struct {
	key, job, sender, content string
	// after is the offset from the job's creation time.
	after time.Duration
}

var demoUsers = []demoUser{
	{
		key: "user-1", name: "Vedanth Bandodkar", email: "vedanth@example.com",
		skills: []string{"React", "Node.js", "Web Design"}, location: "Panjim, Goa", phone: "987-654-3210",
		about: "Web developer and student, comfortable across the MERN stack. Always up for a new project.",
		age:   90 * day,
	},
	{
		key: "user-2", name: "Pranav Kokitkar", email: "pranav@example.com",
		skills: []string{"Gardening", "Landscaping"}, location: "Margao, Goa", phone: "987-654-3211",
		about: "Green thumb. Regular garden maintenance or a full makeover, reliable and hardworking.",
		age:   120 * day,
	},
	{
		key: "user-3", name: "Shubham Galave", email: "shubham@example.com",
		skills: []string{"Content Writing", "SEO", "Digital Marketing"}, location: "Vasco, Goa", phone: "987-654-3212",
		about: "Writer with a knack for digital marketing and search-friendly content.",
		age:   60 * day,
	},
	{
		key: "user-4", name: "Moksh Jain", email: "moksh@example.com",
		skills: []string{"Event Management", "Volunteering"}, location: "Mapusa, Goa", phone: "987-654-3213",
		about: "Organizes events and coordinates teams. Loves bringing people together.",
		age:   30 * day,
	},
	{
		key: "user-5", name: "Namir Khan", email: "namir@example.com",
		skills: []string{"Photography", "Video Editing", "Data Entry"}, location: "Ponda, Goa", phone: "987-654-3214",
		about: "Detail oriented, works with media and data.",
		age:   150 * day,
	},
}

var demoJobs = []demoJob{
	{
		key: "job-1", title: "Simple Website for a Local Cafe",
		description: "Build a one-page responsive website with plain HTML and CSS. No backend needed.",
		skills:      []string{"HTML", "CSS", "Web Design"}, payment: decimal.NewFromInt(4000), location: "Panjim, Goa",
		status: model.JobStatusOpen, poster: "user-1", applicants: []string{"user-3"}, age: 1 * day,
		imageURL: "https://lh3.googleusercontent.com/d/1mbyfw76Ub9IP7ueO7ZArHGCCnxdKKSbH",
	},
	{
		key: "job-2", title: "Help with Garden Maintenance",
		description: "Watering, weeding and clearing leaves for a few hours this weekend.",
		skills:      []string{"Gardening"}, payment: decimal.NewFromInt(1000), location: "Margao, Goa", sos: true,
		status: model.JobStatusAssigned, poster: "user-3", worker: "user-2", applicants: []string{"user-2"}, age: 12 * time.Hour,
		imageURL: "https://lh3.googleusercontent.com/d/12u0BuUs3eFYcObCKA3-cyWKMmF2yTc4G",
	},
	{
		key: "job-3", title: "Volunteer for College Fest",
		description: "Registration desk, event coordination and stall management at the annual college festival.",
		skills:      []string{"Event Management", "Volunteering"}, payment: decimal.NewFromInt(500), location: "Mapusa, Goa",
		status: model.JobStatusPaid, poster: "user-4", worker: "user-1", applicants: []string{"user-1"}, age: 10 * day,
		imageURL: "https://lh3.googleusercontent.com/d/1PAPFWpd8XCj5EbDWb9WpUYeE5LJPVA2z",
	},
	{
		key: "job-4", title: "Write Content for a Travel Blog",
		description: "Three 500-word blog posts about tourist spots in Goa.",
		skills:      []string{"Content Writing", "Blogging"}, payment: decimal.NewFromInt(2500), location: "Vasco, Goa",
		status: model.JobStatusOpen, poster: "user-1", age: 3 * day,
		imageURL: "https://lh3.googleusercontent.com/d/19HBdh97VmITXRc_ExUGhHrto_OxJW2ka",
	},
	{
		key: "job-5", title: "Create Social Media Posters",
		description: "Design 5 or 6 Instagram posters in Canva from provided content and brand guidelines.",
		skills:      []string{"Graphic Design", "Canva", "Social Media"}, payment: decimal.NewFromInt(1500), location: "Remote",
		status: model.JobStatusCompleted, poster: "user-3", worker: "user-1", applicants: []string{"user-1"}, age: 5 * day,
		imageURL: "https://placehold.co/600x400.png",
	},
	{
		key: "job-6", title: "Data Entry for a Small Shop",
		description: "Enter sales data from paper receipts into a spreadsheet.",
		skills:      []string{"Data Entry", "Microsoft Excel"}, payment: decimal.NewFromInt(1200), location: "Panjim, Goa", sos: true,
		status: model.JobStatusOpen, poster: "user-4", age: 30 * time.Minute,
		imageURL: "https://lh3.googleusercontent.com/d/1djhDqDX3YtrRqM7Z42o__z3RfCywFn0q",
	},
	{
		key: "job-7", title: "Translate Menu from English to Konkani",
		description: "Translate a two-page restaurant menu.",
		skills:      []string{"Translation", "Konkani", "English"}, payment: decimal.NewFromInt(800), location: "Margao, Goa",
		status: model.JobStatusPaid, poster: "user-1", worker: "user-3", applicants: []string{"user-3"}, age: 9 * day,
		imageURL: "https://lh3.googleusercontent.com/d/1L0dhnfM1ntUtO8o55Ei-PfiDrx2lSqkE",
	},
	{
		key: "job-8", title: "File and Document Organization",
		description: "Organize and file office documents for a day.",
		skills:      []string{"Organization", "Admin"}, payment: decimal.NewFromInt(700), location: "Ponda, Goa",
		status: model.JobStatusOpen, poster: "user-2", age: 2 * day,
		imageURL: "https://placehold.co/600x400.png",
	},
	{
		key: "job-9", title: "Assist with a Photography Session",
		description: "Carry equipment and hold lighting reflectors during a photoshoot. No experience needed.",
		skills:      []string{"Photography", "Assistant"}, payment: decimal.NewFromInt(1000), location: "Panjim, Goa",
		status: model.JobStatusOpen, poster: "user-5", applicants: []string{"user-1"}, age: 8 * time.Hour,
		imageURL: "https://lh3.googleusercontent.com/d/1xw3mhAzYmcFgi1ydJevbBZo_2R3C4Aed",
	},
	{
		key: "job-10", title: "Urgent: Edit a Short College Project Video",
		description: "Trim clips and add background music to a 5-minute project video.",
		skills:      []string{"Video Editing"}, payment: decimal.NewFromInt(1500), location: "Remote", sos: true,
		status: model.JobStatusAssigned, poster: "user-4", worker: "user-5", applicants: []string{"user-5"}, age: 2 * time.Hour,
		imageURL: "https://lh3.googleusercontent.com/d/1OC1dPYBfOlPVetHtzy8zc01X2TfxnakQ",
	},
	{
		key: "job-11", title: "Digital Marketing Intern",
		description: "Manage social media comments and schedule posts.",
		skills:      []string{"Digital Marketing", "Social Media"}, payment: decimal.NewFromInt(3000), location: "Remote",
		status: model.JobStatusOpen, poster: "user-3", age: 4 * day,
		imageURL: "https://placehold.co/600x400.png",
	},
	{
		key: "job-12", title: "Home Tutoring for Basic Computer Skills",
		description: "Teach word processing and web browsing to a senior citizen, two sessions a week.",
		skills:      []string{"Tutoring", "MS Office"}, payment: decimal.NewFromInt(2000), location: "Mapusa, Goa",
		status: model.JobStatusCompleted, poster: "user-5", worker: "user-1", applicants: []string{"user-1"}, age: 6 * day,
		imageURL: "https://lh3.googleusercontent.com/d/1vRccrDeXDzVL1e9bZRApTeLx9nYuP2ME",
	},
	{
		key: "job-13", title: "Event Photographer for a Birthday Party",
		description: "Photograph a small birthday party on Saturday and deliver 50 edited photos.",
		skills:      []string{"Photography", "Event Photography"}, payment: decimal.NewFromInt(2500), location: "Vasco, Goa",
		status: model.JobStatusPaid, poster: "user-1", worker: "user-5", applicants: []string{"user-5"}, age: 14 * day,
		imageURL: "https://lh3.googleusercontent.com/d/1EhlFhobOk58I7X1jniYGuif8A4-G7zzF",
	},
}

var demoMessages = []demoMessage{
	{key: "msg-1", job: "job-2", sender: "user-3", after: time.Hour,
		content: "Hi Pranav, thanks for taking the gardening job. When would be a good time to come by?"},
	{key: "msg-2", job: "job-2", sender: "user-2", after: time.Hour + time.Minute,
		content: "Hi Shubham! I can be there tomorrow around 10 AM. Does that work for you?"},
	{key: "msg-3", job: "job-2", sender: "user-3", after: time.Hour + 2*time.Minute,
		content: "10 AM works perfectly. See you then!"},
	{key: "msg-job3-1", job: "job-3", sender: "user-4", after: time.Hour,
		content: "Hey Vedanth, thanks for volunteering. Please be at the main gate tomorrow at 9 AM for the briefing."},
	{key: "msg-job3-2", job: "job-3", sender: "user-1", after: time.Hour + 100*time.Second,
		content: "Got it, Moksh. See you there!"},
	{key: "msg-job5-1", job: "job-5", sender: "user-3", after: time.Hour,
		content: "Hi Vedanth, I've assigned you the poster design job. The brand guidelines are in your email."},
	{key: "msg-job5-2", job: "job-5", sender: "user-1", after: time.Hour + 200*time.Second,
		content: "Great, I've received them. I'll get started on the first drafts."},
}
