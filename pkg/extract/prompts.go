package extract

const specificationsPrompt = `
# Task Context
You are a meticulous film archivist. You will be given a section of a French
encyclopedia page about a movie, usually the infobox ("Données clés") or the
technical sheet ("Fiche technique").

# Background Data
Page title: %s
Section content:
%s

# Detailed Task Description & Rules
- Extract only facts that are stated in the text. Never invent values.
- Keep names exactly as written, including accents.
- "release_date" is the first theatrical release date, as written.
- "duration" is the running time, as written (e.g. "2 heures 8 minutes").
- Leave out every field the text does not mention.
- Set "confidence" between 0.0 and 1.0 to reflect how clearly the section
  states these facts. An infobox deserves a higher confidence than prose.

# Output Formatting
Return a single JSON object matching the provided schema.
`

const summaryPrompt = `
# Task Context
You are summarizing the plot section of a French encyclopedia page about a
movie ("Synopsis" or "Résumé").

# Background Data
Page title: %s
Section title: %s
Section content:
%s

# Detailed Task Description & Rules
- Write "content" as a faithful condensation of the section, in French,
  three to six sentences, no spoil warnings, no commentary.
- Do not add facts that are not in the section.
- Set "confidence" between 0.0 and 1.0. A dedicated synopsis section is
  high confidence; scattered plot fragments are low.

# Output Formatting
Return a single JSON object matching the provided schema.
`

const actorsPrompt = `
# Task Context
You are extracting the cast of a movie from a section of a French
encyclopedia page, usually "Distribution" or the technical sheet.

# Background Data
Page title: %s
Section content:
%s

# Detailed Task Description & Rules
- One entry per performer, with their full name as written.
- "roles" lists the character names the performer plays, without the
  "voix de" or "VF" dubbing annotations.
- Skip crew members: directors, producers and writers are not cast.
- Set a per-entry "confidence" between 0.0 and 1.0.

# Output Formatting
Return a single JSON object matching the provided schema. The "actors"
array may be empty if the section lists no cast.
`

const influencePrompt = `
# Task Context
You are identifying the works and persons that influenced a movie, from an
analysis or context section of a French encyclopedia page.

# Background Data
Page title: %s
Section content:
%s

# Detailed Task Description & Rules
- "persons" lists people the text explicitly names as an influence or
  source (authors, directors, painters).
- "works" lists works the movie is based on, inspired by or references.
- An adaptation's source novel belongs in "works".
- Only explicit statements count; thematic resemblance you infer yourself
  does not.
- Set "confidence" between 0.0 and 1.0.

# Output Formatting
Return a single JSON object matching the provided schema.
`

const biographyPrompt = `
# Task Context
You are extracting biographical facts about a person from a section of a
French encyclopedia page ("Biographie" or the infobox).

# Background Data
Page title: %s
Section content:
%s

# Detailed Task Description & Rules
- "content" is a short French summary of the person's life, three to six
  sentences.
- Dates are kept as written in the text.
- "nationalities" holds adjectives or country names as written, one entry
  per nationality, no duplicates.
- "occupations" lists professions the text states (actrice, réalisateur).
- Childhood details (birthplace, parents' trades) go under "childhood",
  only when stated.
- Set "confidence" between 0.0 and 1.0.

# Output Formatting
Return a single JSON object matching the provided schema.
`

const characteristicsPrompt = `
# Task Context
You are extracting personal characteristics of a person from a section of a
French encyclopedia page.

# Background Data
Page title: %s
Section content:
%s

# Detailed Task Description & Rules
- "gender" is one of "female", "male" or "other", only when the text makes
  it unambiguous.
- "height" is kept as written (e.g. "1,68 m").
- "traits" are character or personality traits the text attributes to the
  person.
- "languages" lists languages the person speaks, as written.
- Set "confidence" between 0.0 and 1.0.

# Output Formatting
Return a single JSON object matching the provided schema.
`

const visibleFeaturesPrompt = `
# Task Context
You are noting the visible physical features of a person as described in a
section of a French encyclopedia page.

# Background Data
Page title: %s
Section content:
%s

# Detailed Task Description & Rules
- "traits" lists only features the text describes as visible: hair color,
  eye color, distinctive marks.
- Keep the wording of the text.
- Set "confidence" between 0.0 and 1.0. Descriptions of photographs are
  lower confidence than direct statements.

# Output Formatting
Return a single JSON object matching the provided schema.
`
