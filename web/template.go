// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package web

// Single-page viewer: lists runs on the left, draws the selected run on an
// OpenStreetMap base layer.
const mapHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>dashtrack</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
  body { margin: 0; display: flex; height: 100vh; font-family: sans-serif; }
  #runs { width: 280px; overflow-y: auto; border-right: 1px solid #ccc; }
  #runs h1 { font-size: 1.1em; padding: 8px 12px; margin: 0; }
  #runs div { padding: 8px 12px; cursor: pointer; border-bottom: 1px solid #eee; }
  #runs div:hover { background: #f0f0f0; }
  #runs small { color: #666; }
  #map { flex: 1; }
</style>
</head>
<body>
<div id="runs"><h1>dashtrack runs</h1></div>
<div id="map"></div>
<script>
const map = L.map('map').setView([0, 0], 2);
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);

let layer = null;

async function show(source) {
  const resp = await fetch('/api/runs/track?source=' + encodeURIComponent(source));
  const feature = await resp.json();
  if (layer) map.removeLayer(layer);
  layer = L.geoJSON(feature).addTo(map);
  map.fitBounds(layer.getBounds());
}

async function load() {
  const resp = await fetch('/api/runs');
  const runs = await resp.json();
  const list = document.getElementById('runs');
  for (const run of runs) {
    const item = document.createElement('div');
    item.innerHTML = run.video_source +
      '<br><small>' + run.kept + ' points, ' + run.cells + ' cells</small>';
    item.onclick = () => show(run.video_source);
    list.appendChild(item);
  }
}

load();
</script>
</body>
</html>
`
