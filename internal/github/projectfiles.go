package github

// projectFiles returns the fixed files pushed alongside data_backup.json so
// the destination repo is self-describing.
func projectFiles() []File {
	return []File{
		{Path: "README.md", Content: []byte(readmeContent)},
		{Path: "index.html", Content: []byte(indexContent)},
	}
}

const readmeContent = `# Chore Tracker Backup

This repository holds automated backups of a household chore tracker.

- ` + "`data_backup.json`" + ` contains the full snapshot: members, chores, and
  completion logs. It can be imported back into the tracker as-is.
- ` + "`index.html`" + ` is a minimal read-only viewer for the snapshot.

Each upload overwrites the previous snapshot on this branch; use git history
to reach older ones.
`

const indexContent = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Chore Tracker Backup</title>
<style>
body { font-family: sans-serif; max-width: 40rem; margin: 2rem auto; }
li { margin: 0.25rem 0; }
</style>
</head>
<body>
<h1>Chore Tracker Backup</h1>
<p>Latest snapshot summary:</p>
<ul id="summary"><li>Loading data_backup.json&hellip;</li></ul>
<script>
fetch('data_backup.json')
  .then(function (r) { return r.json(); })
  .then(function (d) {
    document.getElementById('summary').innerHTML =
      '<li>Members: ' + (d.members || []).length + '</li>' +
      '<li>Chores: ' + (d.chores || []).length + '</li>' +
      '<li>Logs: ' + (d.logs || []).length + '</li>';
  })
  .catch(function () {
    document.getElementById('summary').innerHTML = '<li>No snapshot found.</li>';
  });
</script>
</body>
</html>
`
