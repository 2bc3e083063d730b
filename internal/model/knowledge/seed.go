package knowledge

// Seed provides the built-in Desa Wisata Sukarame knowledge base.
func Seed() Village {
	return Village{
		Name:    "Desa Wisata Sukarame",
		Region:  "Carita, Kabupaten Pandeglang, Banten",
		Summary: "Jelajahi keindahan alam bawah laut dan keramahan lokal.",
		Focus:   "Konservasi Terumbu Karang & Wisata Edukasi",
		Assistant: Assistant{
			Name:    "Si Karame",
			Welcome: "Halo! Selamat datang di **Desa Wisata Sukarame**. 👋\n\nSaya **Si Karame**, siap membantu Anda menjelajahi keindahan ekowisata bahari kami. Ada yang bisa saya bantu hari ini? 🌊🐠",
			StyleGuide: []string{
				"Gunakan Bahasa Indonesia yang baik, santai, namun sopan.",
				"Gunakan emoji sesekali untuk terlihat ramah.",
				"Jika user bertanya paket wisata, sebutkan opsi yang tersedia di atas.",
				"Jika tidak tahu jawaban spesifik (misal: ketersediaan kamar hari ini), sarankan untuk menghubungi kontak pengelola desa secara langsung.",
			},
			Emojis:   []string{"🌊", "🐠", "🌴", "🛶", "🏡"},
			Campaign: "Promosikan semangat pelestarian lingkungan (Save Our Ocean) di setiap kesempatan yang relevan.",
		},
		Highlights: []Highlight{
			{Title: "Ekowisata Bahari", Description: "Transplantasi karang & snorkeling"},
			{Title: "Homestay Warga", Description: "Menginap nyaman suasana desa"},
			{Title: "Spot Foto", Description: "Sunset view & jembatan pelangi"},
			{Title: "Lokasi", Description: "Carita, Pandeglang, Banten"},
		},
		Attractions: "Ekowisata bawah laut (transplantasi terumbu karang), snorkeling, diving, dan pantai yang indah. Jelaskan tentang konservasi alam yang dilakukan warga.",
		Packages: []Package{
			{Name: "Transplantasi Karang", Description: "Wisata edukasi pelestarian alam bawah laut."},
			{Name: "Edutrip Mengolah Sawah", Description: "Belajar bertani dan membajak sawah secara tradisional."},
			{Name: "Belajar Memahat Kayu", Description: "Edukasi kerajinan tangan lokal (kriya)."},
			{Name: "Explore Teluk Carita", Description: "Menjelajahi keindahan laut teluk Carita."},
			{Name: "One Day Trip", Description: "Paket wisata seharian penuh di desa."},
			{Name: "Live In", Description: "Tinggal sementara berbaur dengan warga desa."},
			{Name: "Paket 2 Hari 1 Malam", Description: "Menginap dengan rangkaian aktivitas lengkap."},
			{Name: "Sewa Sepeda Santai/Gunung", Description: "Berkeliling menikmati suasana desa."},
			{Name: "Edu Trip", Description: "Paket perjalanan wisata edukasi lainnya."},
		},
		Homestays: []Homestay{
			{
				Name:        "Pondok Badak",
				Price:       500000,
				Label:       "Keluarga",
				Description: "Homestay yang sangat nyaman dan cocok buat keluarga yang ingin berlibur.",
				SuitableFor: "Strategis, dekat dengan Destinasi Wisata Pantai dan Air Terjun (Curug).",
			},
			{
				Name:        "Tropical Homestay",
				Price:       350000,
				Label:       "Cozy",
				Description: "Homestay yang *cozy* (nyaman).",
				SuitableFor: "Wisatawan solo (sendiri) maupun yang membawa pasangan.",
			},
			{
				Name:        "Ceria Homestay",
				Price:       250000,
				Label:       "Hemat",
				Description: "Pilihan ekonomis dengan fasilitas yang sederhana.",
				SuitableFor: "Wisatawan backpacker atau yang mencari harga terjangkau.",
			},
		},
		Culture: "Keramahan warga lokal, gotong royong, dan kerajinan tangan khas (jika ada, seperti anyaman pandan).",
		Access:  "Cara menuju lokasi dari Jakarta atau Serang (biasanya via Tol Serang-Panimbang atau jalan raya Anyer-Carita).",
		Locations: []Location{
			{Name: "Pantai Sukarame", MapURL: "https://maps.app.goo.gl/fDXaaujHS1juhjXA6", Address: "PRRH+87H, Sukarame, Kec. Carita"},
			{Name: "Konservasi Alam Bawah Laut", MapURL: "https://maps.app.goo.gl/EZJSmWZTB6Tf1TwS6", Address: "Sukarame, Kec. Carita"},
			{Name: "Taman Pintar Desa Sukarame", MapURL: "https://maps.app.goo.gl/dhAqnVkf1x2tsraK9", Address: "Jl. Raya Carita No.20"},
			{Name: "Jembatan Gantung Sukarame", MapURL: "https://maps.app.goo.gl/dMp7yKez9A5q7HyW8", Address: "PR8M+GGF, Sukarame"},
			{Name: "Curug Putri Carita", MapURL: "https://maps.app.goo.gl/2MnuTibBkHPimXwVA", Address: "Jl. Desa, RT.14/RW.04"},
		},
		Websites: []Website{
			{
				Name:  "Jadesta Kemenparekraf (Profil Desa)",
				URL:   "https://jadesta.kemenparekraf.go.id/desa/sukarame",
				Usage: "Gunakan link ini jika user meminta informasi lebih lengkap, profil resmi desa, statistik, atau detail paket wisata via platform pemerintah.",
			},
		},
		Contact: "0812-XXXX-XXXX atau IG: @desawisatasukarame",
		Tip:     "Bawalah pakaian ganti jika ingin snorkeling. Jagalah kebersihan laut dengan tidak membuang sampah sembarangan.",
		Intro: Intro{
			Title: "Jelajahi Sukarame! 🌴",
			Body:  "Temukan surga tersembunyi di Carita. Tanyakan tentang spot snorkeling terbaik, homestay, atau cara berpartisipasi dalam transplantasi karang.",
		},
		Suggestions: []string{
			"Apa saja paket wisata yang tersedia?",
			"Berapa harga snorkeling di Sukarame?",
			"Rekomendasi homestay dekat pantai?",
			"Bagaimana cara menuju lokasi?",
		},
		Disclaimer: "Informasi yang diberikan AI mungkin perlu diverifikasi dengan pengelola desa.",
	}
}
